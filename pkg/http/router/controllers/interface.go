package controllers

import (
	"context"

	"github.com/lintang-b-s/pathcompare/pkg/datastructure"
	"github.com/lintang-b-s/pathcompare/pkg/http/usecases"
)

type PathCompareService interface {
	PathCompare(ctx context.Context, userID string, fixes []*datastructure.GPSPoint) (*usecases.PathComparison, error)
}
