package users

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Alp4ka/rankpager"
)

// ListParams is a single page request.
type ListParams struct {
	Cursor string
	IsNext bool
	Limit  int
	Filter *Filter
}

// Service serves pages of users.
type Service struct {
	pager  *rankpager.RankPager[User, Filter]
	logger logrus.FieldLogger
}

func NewService(executor rankpager.Executor, logger logrus.FieldLogger) (*Service, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	pager, err := rankpager.NewRankPager[User, Filter](Schema, executor)
	if err != nil {
		return nil, fmt.Errorf("users: %w", err)
	}

	return &Service{
		pager:  pager.WithLogger(logger),
		logger: logger,
	}, nil
}

// ParseSort resolves "column asc|desc" strings against the user schema.
func ParseSort(sort []string) (rankpager.Orderings, error) {
	if len(sort) == 0 {
		return DefaultSort, nil
	}

	return rankpager.ParseSort(sort, Schema.ColumnMapping())
}

// List returns one page of users matching params.Filter.
func (s *Service) List(ctx context.Context, params ListParams) (*rankpager.ResultPage[User], error) {
	if params.Filter == nil {
		return nil, fmt.Errorf("users: %w", rankpager.ErrNilFilter)
	}

	filter := *params.Filter
	if len(filter.Sort) == 0 {
		filter.Sort = DefaultSort
	}

	page, err := s.pager.GetPage(ctx, params.Cursor, params.IsNext, filter, params.Limit)
	if err != nil {
		return nil, fmt.Errorf("users: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"items":        len(page.Items),
		"has_more":     page.HasMore,
		"has_previous": page.HasPrevious,
	}).Debug("users page served")

	return page, nil
}
