package test

import (
	"context"
	"net/http"

	"github.com/gymly/backend/internal/weights"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestBodyWeightPoints() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := doLogin(ctx, t)

	var point weights.WeightPoint
	s.doRequest(
		ctx, t,
		"POST", "/weights", token,
		weights.AddWeightRequest{Weight: 82.4, Date: "2025-03-10"},
		http.StatusCreated, &point,
	)
	require.NotEmpty(t, point.ID)
	assert.Equal(t, "2025-03-10", point.Date)

	// same date upserts, the day keeps a single point
	var updated weights.WeightPoint
	s.doRequest(
		ctx, t,
		"POST", "/weights", token,
		weights.AddWeightRequest{Weight: 83.1, Date: "2025-03-10"},
		http.StatusCreated, &updated,
	)
	// the correction reports the surviving row id, not a fresh one
	assert.Equal(t, point.ID, updated.ID)

	var list weights.WeightsListResponse
	s.doRequest(ctx, t, "GET", "/weights", token, nil, http.StatusOK, &list)
	count := 0
	for _, p := range list.Points {
		if p.Date == "2025-03-10" {
			count++
			assert.Equal(t, 83.1, p.Weight)
		}
	}
	assert.Equal(t, 1, count)

	// garbage weight and date are rejected
	s.doRequest(
		ctx, t,
		"POST", "/weights", token,
		weights.AddWeightRequest{Weight: -3},
		http.StatusBadRequest, nil,
	)
	s.doRequest(
		ctx, t,
		"POST", "/weights", token,
		weights.AddWeightRequest{Weight: 80, Date: "10.03.2025"},
		http.StatusBadRequest, nil,
	)

	// the upsert keeps the original row id, delete by it
	var deleted weights.DeletedWeightResponse
	s.doRequest(ctx, t, "DELETE", "/weights/"+point.ID, token, nil, http.StatusOK, &deleted)
	s.doRequest(ctx, t, "DELETE", "/weights/"+point.ID, token, nil, http.StatusNotFound, nil)
}
