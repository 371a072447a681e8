package model

type User struct {
	ID        int64  `json:"uid"`
	Name      string `json:"name"`
	Avatar    string `json:"avatar"`
	Bio       string `json:"bio"`
	Like      int64  `json:"like"`
	Dislike   int64  `json:"dislike"`
	CreatedAt string `json:"created_at"`
}

type Topic struct {
	ID         int64   `json:"tid"`
	Author     User    `json:"author"`
	Title      string  `json:"title"`
	Content    string  `json:"content"`
	Likes      []int64 `json:"likes"`
	Dislikes   []int64 `json:"dislikes"`
	ReplyCount int64   `json:"reply_count"`
	CreatedAt  string  `json:"created_at"`
}

type Reply struct {
	ID        int64   `json:"rid"`
	TopicID   int64   `json:"tid"`
	Author    User    `json:"author"`
	Floor     int64   `json:"floor"`
	Content   string  `json:"content"`
	Likes     []int64 `json:"likes"`
	Dislikes  []int64 `json:"dislikes"`
	CreatedAt string  `json:"created_at"`
}

type Message struct {
	ID        int64  `json:"mid"`
	FromUID   int64  `json:"from_uid"`
	ToUID     int64  `json:"to_uid"`
	Type      string `json:"type"`
	Status    string `json:"status"`
	Content   string `json:"content"`
	TopicID   int64  `json:"tid,omitempty"`
	ReplyID   int64  `json:"rid,omitempty"`
	CreatedAt string `json:"created_at"`
}
