// Package response renders the shared API envelope: every endpoint returns
// {data, status, message}, and list endpoints nest a pagination block.
package response

import (
	"errors"

	"github.com/gin-gonic/gin"

	"cort_fleet/internal/apperr"
)

type Envelope struct {
	Data    interface{} `json:"data"`
	Status  int         `json:"status"`
	Message string      `json:"message"`
}

// Pagination describes the position of a page within a filtered result set.
type Pagination struct {
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	Pages   int   `json:"pages"`
	HasNext bool  `json:"hasNext"`
	HasPrev bool  `json:"hasPrev"`
}

// Paginate computes pagination metadata. Pages is never below 1, even for an
// empty result set.
func Paginate(page, limit int, total int64) Pagination {
	pages := int((total + int64(limit) - 1) / int64(limit))
	if pages < 1 {
		pages = 1
	}
	return Pagination{
		Page:    page,
		Limit:   limit,
		Total:   total,
		Pages:   pages,
		HasNext: page < pages,
		HasPrev: page > 1,
	}
}

// Offset converts a page/limit pair into a query offset.
func Offset(page, limit int) int {
	return (page - 1) * limit
}

// JSON writes the standard envelope.
func JSON(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, Envelope{Data: data, Status: status, Message: message})
}

// Paginated writes a list envelope with its pagination block.
func Paginated(c *gin.Context, status int, data interface{}, pagination Pagination, message string) {
	c.JSON(status, Envelope{
		Data:    gin.H{"data": data, "pagination": pagination},
		Status:  status,
		Message: message,
	})
}

// Err writes an error envelope, honoring apperr statuses and falling back to
// fallbackStatus with the raw message for anything else.
func Err(c *gin.Context, err error, fallbackStatus int) {
	var apiErr *apperr.Error
	if errors.As(err, &apiErr) {
		JSON(c, apiErr.StatusCode, nil, apiErr.Message)
		return
	}
	JSON(c, fallbackStatus, nil, err.Error())
}

// Error writes a plain error envelope.
func Error(c *gin.Context, status int, message string) {
	JSON(c, status, nil, message)
}
