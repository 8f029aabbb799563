package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestNewPagination(t *testing.T) {
	cases := []struct {
		page      int
		pageSize  int
		total     int64
		totalPage int64
	}{
		{1, 5, 12, 3},
		{1, 5, 10, 2},
		{2, 10, 0, 0},
		{1, 10, 1, 1},
		{1, 0, 50, 0},
	}
	for _, tc := range cases {
		got := NewPagination(tc.page, tc.pageSize, tc.total)
		if got.TotalPage != tc.totalPage {
			t.Fatalf("total=%d size=%d: expected total_page %d, got %d",
				tc.total, tc.pageSize, tc.totalPage, got.TotalPage)
		}
		if got.Page != tc.page || got.PageSize != tc.pageSize || got.Total != tc.total {
			t.Fatalf("pagination echo mismatch: %+v", got)
		}
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := map[int]int{
		CodeOK:              200,
		CodeBadRequest:      400,
		CodeUnauthorized:    401,
		CodeForbidden:       403,
		CodeNotFound:        404,
		CodeConflict:        409,
		CodeTooManyRequests: 429,
		CodeInternal:        500,
		1234:                500,
	}
	for code, expected := range cases {
		if got := HTTPStatus(code); got != expected {
			t.Fatalf("code %d: expected %d, got %d", code, expected, got)
		}
	}
}

func TestErrorAttachesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/missing", nil)
	c.Set("request_id", "req-42")

	NotFound(c, "资源不存在")

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	var body Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body failed: %v", err)
	}
	if body.StatusCode != CodeNotFound {
		t.Fatalf("expected business code 404, got %d", body.StatusCode)
	}
	data, ok := body.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("expected data object, got %T", body.Data)
	}
	if data["request_id"] != "req-42" {
		t.Fatalf("expected request id echo, got %v", data["request_id"])
	}
}

func TestSuccessWithPage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/posts", nil)

	SuccessWithPage(c, []string{"a", "b"}, NewPagination(1, 10, 2))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body PageResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body failed: %v", err)
	}
	if body.Pagination.TotalPage != 1 {
		t.Fatalf("expected total_page 1, got %d", body.Pagination.TotalPage)
	}
}
