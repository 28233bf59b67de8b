// Package handler holds helpers shared by the HTTP handlers in its
// subpackages.
package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"

	"github.com/skous2/nails-by-brooke/internal/middleware"
	"github.com/skous2/nails-by-brooke/internal/model"
	apperrors "github.com/skous2/nails-by-brooke/pkg/errors"
	"github.com/skous2/nails-by-brooke/pkg/httputil"
	"github.com/skous2/nails-by-brooke/pkg/validator"
)

// BindJSON decodes and validates the body into obj. On failure it writes the
// error envelope and returns false.
func BindJSON(c *gin.Context, obj interface{}) bool {
	return bindJSON(c, obj, c.ShouldBindJSON(obj))
}

// BindOptionalJSON is BindJSON for routes whose body may be omitted. An empty
// body leaves obj at its zero value, whether or not a length was sent.
func BindOptionalJSON(c *gin.Context, obj interface{}) bool {
	err := c.ShouldBindJSON(obj)
	if errors.Is(err, io.EOF) {
		err = binding.Validator.ValidateStruct(obj)
	}
	return bindJSON(c, obj, err)
}

func bindJSON(c *gin.Context, obj interface{}, err error) bool {
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		httputil.RespondWithError(c, apperrors.PayloadTooLarge("Request body too large"))
		return false
	}
	httputil.RespondWithError(c, apperrors.Validation(validator.Messages(err, obj)...))
	return false
}

// UserID returns the authenticated caller. Routes using it sit behind the
// auth middleware, so a miss is a wiring bug and answered as 401.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthorized("Authorization token required"))
	}
	return id, ok
}

// ParamID parses the :id path parameter, answering 400 when it is not a uuid.
func ParamID(c *gin.Context, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation(fmt.Sprintf("Invalid %s ID", strings.ToLower(resource))))
		return uuid.Nil, false
	}
	return id, true
}

// QueryParser collects every problem in a query string before answering.
type QueryParser struct {
	c       *gin.Context
	details []string
}

func NewQueryParser(c *gin.Context) *QueryParser {
	return &QueryParser{c: c}
}

func (p *QueryParser) Bool(key, msg string) *bool {
	raw := strings.TrimSpace(p.c.Query(key))
	if raw == "" {
		return nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		p.details = append(p.details, msg)
		return nil
	}
	return &b
}

func (p *QueryParser) Date(key, msg string) *model.Date {
	raw := strings.TrimSpace(p.c.Query(key))
	if raw == "" {
		return nil
	}
	d, err := model.ParseDate(raw)
	if err != nil {
		p.details = append(p.details, msg)
		return nil
	}
	return &d
}

func (p *QueryParser) UUID(key, msg string) *uuid.UUID {
	raw := strings.TrimSpace(p.c.Query(key))
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		p.details = append(p.details, msg)
		return nil
	}
	return &id
}

func (p *QueryParser) Int(key string, def int, msg string) int {
	raw := strings.TrimSpace(p.c.Query(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		p.details = append(p.details, msg)
		return def
	}
	return n
}

// Dates reads start_date and end_date.
func (p *QueryParser) Dates() model.DateRange {
	return model.DateRange{
		Start: p.Date("start_date", "Valid start date is required"),
		End:   p.Date("end_date", "Valid end date is required"),
	}
}

// Done writes a 400 listing every problem and returns false, or returns true
// when the query was clean.
func (p *QueryParser) Done() bool {
	if len(p.details) > 0 {
		httputil.RespondWithError(p.c, apperrors.Validation(p.details...))
		return false
	}
	return true
}
