package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Alp4ka/rankpager"
	"github.com/Alp4ka/rankpager/internal/users"
)

type listUsersReq struct {
	Cursor  string   `validate:"max=4096"`
	IsNext  bool
	Limit   int      `validate:"gte=0"`
	Name    string   `validate:"max=255"`
	Surname string   `validate:"max=255"`
	Email   string   `validate:"omitempty,email,max=320"`
	Sort    []string `validate:"max=4,dive,required"`
}

// GET /users?cursor=&isNext=&limit=&name=&surname=&email=&sort=
func (h *handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	req, err := bindListUsersReq(r.URL.Query())
	if err != nil {
		WriteError(w, http.StatusBadRequest, codeInvalidRequest, err.Error())
		return
	}

	if err = h.validate.Struct(req); err != nil {
		WriteError(w, http.StatusBadRequest, codeInvalidRequest, validationMessage(err))
		return
	}

	sort, err := users.ParseSort(req.Sort)
	if err != nil {
		WriteError(w, http.StatusBadRequest, codeInvalidRequest, "invalid sort: "+err.Error())
		return
	}

	limit, _ := h.paging.Limits().Normalize(req.Limit)

	page, err := h.users.List(r.Context(), users.ListParams{
		Cursor: req.Cursor,
		IsNext: req.IsNext,
		Limit:  limit,
		Filter: &users.Filter{
			Name:    req.Name,
			Surname: req.Surname,
			Email:   req.Email,
			Sort:    sort,
		},
	})
	if err != nil {
		h.writeListError(w, r, err)
		return
	}

	if page.IsEmpty() {
		WriteError(w, http.StatusNotFound, codeNotFound, "no more results")
		return
	}

	WriteJSON(w, http.StatusOK, page)
}

func (h *handlers) writeListError(w http.ResponseWriter, r *http.Request, err error) {
	log := h.logger.WithError(err).WithField("path", r.URL.Path)

	switch {
	case rankpager.IsContractViolation(err):
		WriteError(w, http.StatusBadRequest, codeInvalidRequest, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		log.Warn("page request aborted")
		WriteError(w, http.StatusServiceUnavailable, codeUnavailable, "request cancelled or timed out")
	case errors.Is(err, rankpager.ErrSentinelMismatch):
		log.Error("page accounting defect")
		WriteError(w, http.StatusInternalServerError, codeInternal, "internal error")
	case errors.Is(err, rankpager.ErrQuery):
		log.Error("backing store failure")
		WriteError(w, http.StatusServiceUnavailable, codeUnavailable, "storage temporarily unavailable")
	default:
		log.Error("page request failed")
		WriteError(w, http.StatusInternalServerError, codeInternal, "internal error")
	}
}

func bindListUsersReq(q url.Values) (listUsersReq, error) {
	req := listUsersReq{
		Cursor:  q.Get("cursor"),
		IsNext:  true,
		Name:    strings.TrimSpace(q.Get("name")),
		Surname: strings.TrimSpace(q.Get("surname")),
		Email:   strings.TrimSpace(q.Get("email")),
	}

	if s := q.Get("isNext"); s != "" {
		isNext, err := strconv.ParseBool(s)
		if err != nil {
			return listUsersReq{}, errors.New("isNext must be a boolean")
		}
		req.IsNext = isNext
	}

	if s := q.Get("limit"); s != "" {
		limit, err := strconv.Atoi(s)
		if err != nil {
			return listUsersReq{}, errors.New("limit must be an integer")
		}
		req.Limit = limit
	}

	for _, s := range q["sort"] {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				req.Sort = append(req.Sort, part)
			}
		}
	}

	return req, nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}

	fe := verrs[0]
	return strings.ToLower(fe.Field()) + " failed on '" + fe.Tag() + "'"
}

func (h *handlers) GetHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		h.logger.WithError(err).Warn("health check failed")
		WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
