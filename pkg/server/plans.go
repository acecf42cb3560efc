/*
Copyright © 2026 Planfeed Authors
SPDX-License-Identifier: Apache-2.0
*/

package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/planfeed/planfeed/pkg/plan"
	"github.com/planfeed/planfeed/pkg/validator"
)

// PlansResponse is the body of GET /v1/plans.
type PlansResponse struct {
	Plans   []plan.Plan       `json:"plans"`
	Summary validator.Summary `json:"summary"`
}

// handlePlans handles GET /v1/plans. The optional provider query parameter
// filters by provider name, case-insensitively.
func (s *Server) handlePlans(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed,
			"Method not allowed", false, nil)
		return
	}

	s.mu.RLock()
	c := s.collection
	s.mu.RUnlock()

	resp := PlansResponse{Plans: []plan.Plan{}}
	if c != nil {
		resp.Plans = c.Plans
		resp.Summary = c.Summary
	}

	if provider := r.URL.Query().Get("provider"); provider != "" {
		filtered := make([]plan.Plan, 0, len(resp.Plans))
		for _, p := range resp.Plans {
			if strings.EqualFold(p.Provider, provider) {
				filtered = append(filtered, p)
			}
		}
		resp.Plans = filtered
		resp.Summary.Valid = len(filtered)
	}

	respondJSON(w, http.StatusOK, resp)
}

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Plans     int       `json:"plans"`
}

// handleHealth handles GET /healthz
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.mu.RLock()
	count := 0
	if s.collection != nil {
		count = len(s.collection.Plans)
	}
	s.mu.RUnlock()

	respondJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Plans:     count,
	})
}
