package router

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/mitchellh/mapstructure"
)

// bind decodes the JSON body of POST requests and the query string of the
// other methods into req. Query values are weakly typed, so "1" decodes into
// an integer and "true" into a boolean. Absent keys leave the field untouched.
func bind(r *http.Request, req any) error {
	if r.Method == http.MethodPost {
		err := json.NewDecoder(r.Body).Decode(req)
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}

		return nil
	}

	query := map[string]any{}
	for key, values := range r.URL.Query() {
		if len(values) == 1 {
			query[key] = values[0]
		} else {
			query[key] = values
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           req,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(query)
}
