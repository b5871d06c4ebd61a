package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/MikeConroy67/hydrology-tools/internal/storage"
	"github.com/MikeConroy67/hydrology-tools/pkg/hydraulics"
)

// TraversalRequest is the JSON body accepted by POST /api/traversal.
type TraversalRequest struct {
	Material              string                    `json:"material"`
	AgeYears              float64                   `json:"age_years"`
	InitialDiameterMeters float64                   `json:"initial_diameter_meters"`
	Segments              []hydraulics.SlopeSegment `json:"segments"`
	Pumps                 []hydraulics.PumpEvent    `json:"pumps,omitempty"`
	PumpPolicy            string                    `json:"pump_policy,omitempty"`
}

// TraversalResponse wraps the persisted record form of a result so infinite
// travel times encode cleanly, plus fields the record omits.
type TraversalResponse struct {
	storage.Record
	MaterialDefaulted bool   `json:"material_defaulted,omitempty"`
	PumpPolicy        string `json:"pump_policy,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *Controller) handleTraversal(w http.ResponseWriter, req *http.Request) {
	var body TraversalRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		c.writeError(w, req, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := hydraulics.RunTraversal(hydraulics.TraversalRequest{
		Material:              hydraulics.Material(body.Material),
		AgeYears:              body.AgeYears,
		InitialDiameterMeters: body.InitialDiameterMeters,
		Segments:              body.Segments,
		Pumps:                 body.Pumps,
		PumpPolicy:            hydraulics.PumpPolicyByName(body.PumpPolicy),
	})
	if err != nil {
		if errors.Is(err, hydraulics.ErrInvalidGeometry) {
			c.writeError(w, req, http.StatusBadRequest, err.Error())
		} else {
			c.writeError(w, req, http.StatusInternalServerError, err.Error())
		}
		return
	}

	if result.MaterialDefaulted {
		c.logger.Warnf("unrecognized material %q substituted with %s", body.Material, result.Material)
	}

	// Hand the result to the storage backends without blocking the response.
	select {
	case c.distributor <- result:
	default:
		c.logger.Warn("result distributor full, dropping result from storage")
	}

	resp := TraversalResponse{
		Record:            storage.NewRecord(result),
		MaterialDefaulted: result.MaterialDefaulted,
		PumpPolicy:        result.PumpPolicy,
	}
	if err := c.formatter.WriteResponse(w, req, resp, nil); err != nil {
		c.logger.Errorf("error writing traversal response: %v", err)
	}
}

const (
	defaultRecentLimit = 10
	maxRecentLimit     = 100
)

func (c *Controller) handleRecentResults(w http.ResponseWriter, req *http.Request) {
	if c.results == nil {
		c.writeError(w, req, http.StatusNotFound, "no archival storage backend configured")
		return
	}

	limit := defaultRecentLimit
	if raw := req.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.writeError(w, req, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}

	records, err := c.results.RecentResults(req.Context(), limit)
	if err != nil {
		c.logger.Errorf("error fetching recent results: %v", err)
		c.writeError(w, req, http.StatusInternalServerError, "error fetching recent results")
		return
	}
	if records == nil {
		records = []storage.Record{}
	}
	if err := c.formatter.WriteResponse(w, req, records, nil); err != nil {
		c.logger.Errorf("error writing recent results response: %v", err)
	}
}

// materialInfo is one entry of the /api/materials listing.
type materialInfo struct {
	Material               string  `json:"material"`
	RoughnessCoefficient   float64 `json:"roughness_coefficient"`
	CorrosionRateMmPerYear float64 `json:"corrosion_rate_mm_per_year"`
}

func (c *Controller) handleMaterials(w http.ResponseWriter, req *http.Request) {
	materials := hydraulics.Materials()
	infos := make([]materialInfo, 0, len(materials))
	for _, m := range materials {
		p := hydraulics.Lookup(m)
		infos = append(infos, materialInfo{
			Material:               string(m),
			RoughnessCoefficient:   p.RoughnessCoefficient,
			CorrosionRateMmPerYear: p.CorrosionRateMmPerYear,
		})
	}
	if err := c.formatter.WriteResponse(w, req, infos, nil); err != nil {
		c.logger.Errorf("error writing materials response: %v", err)
	}
}

func (c *Controller) handleMaterial(w http.ResponseWriter, req *http.Request) {
	name := mux.Vars(req)["material"]
	m, defaulted := hydraulics.ResolveMaterial(name)
	if defaulted {
		c.writeError(w, req, http.StatusNotFound, "unknown material: "+name)
		return
	}
	p := hydraulics.Lookup(m)
	resp := materialInfo{
		Material:               string(m),
		RoughnessCoefficient:   p.RoughnessCoefficient,
		CorrosionRateMmPerYear: p.CorrosionRateMmPerYear,
	}
	if err := c.formatter.WriteResponse(w, req, resp, nil); err != nil {
		c.logger.Errorf("error writing material response: %v", err)
	}
}

func (c *Controller) handleHealth(w http.ResponseWriter, req *http.Request) {
	if err := c.formatter.WriteResponse(w, req, map[string]string{"status": "ok"}, nil); err != nil {
		c.logger.Errorf("error writing health response: %v", err)
	}
}

func (c *Controller) writeError(w http.ResponseWriter, _ *http.Request, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(errorResponse{Error: msg}); err != nil {
		c.logger.Errorf("error writing error response: %v", err)
	}
}
