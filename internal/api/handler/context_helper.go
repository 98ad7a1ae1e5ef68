package handler

import (
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"

	"uni-analytics/backend/pkg/response"
)

// bindReportBody decodes the JSON body into a raw map and enforces the
// required-field contract: every absent or null field is enumerated in the
// 400 response together with the fields actually received. Returns ok=false
// after writing the response; callers should return immediately.
func bindReportBody(c *gin.Context, required ...string) (map[string]interface{}, bool) {
	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "request body must be a JSON object")
		return nil, false
	}

	received := make([]string, 0, len(body))
	for k := range body {
		received = append(received, k)
	}
	sort.Strings(received)

	var missing []string
	for _, field := range required {
		if v, ok := body[field]; !ok || v == nil {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		response.MissingFields(c, missing, received)
		return nil, false
	}

	return body, true
}

// fieldString coerces a JSON value to string. Numbers are accepted because
// callers historically sent the year field both ways.
func fieldString(v interface{}) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatInt(int64(t), 10), true
	default:
		return "", false
	}
}

// fieldInt coerces a JSON value to int.
func fieldInt(v interface{}) (int, bool) {
	switch t := v.(type) {
	case float64:
		return int(t), true
	case string:
		n, err := strconv.Atoi(t)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
