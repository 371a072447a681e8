package common

import "fmt"

func RedisKeyUser(userID int64) string {
	return fmt.Sprintf("user:%d", userID)
}
