// Package config holds the tunable policies consumed by the placement,
// routing, and scheduler subsystems: plain structs, a Default
// constructor, and a Valid method returning sentinel errors.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel validation errors.
var (
	ErrInvalidWeight          = errors.New("weight must be nonnegative")
	ErrInvalidReplicas        = errors.New("min_replicas must be positive and <= max_replicas <= MAX_PARITY_TAGS")
	ErrInvalidTreeDepth       = errors.New("tree_evaluation_depth must be positive")
	ErrInvalidInterval        = errors.New("scheduler interval must be positive")
	ErrRoutingWeightsNegative = errors.New("routing weights must be nonnegative")
)

// MaxParityTags is the per-node tag capacity.
const MaxParityTags = 32

// PlacementPolicy parameterizes the parity placement engine.
type PlacementPolicy struct {
	RTTWeight           float64
	LoadBalanceWeight   float64
	KNNSimilarityWeight float64
	CentralityWeight    float64
	MinReplicas         int
	MaxReplicas         int
	TreeEvaluationDepth int
}

// DefaultPlacementPolicy returns a balanced mix of RTT, load, similarity,
// and centrality weighting.
func DefaultPlacementPolicy() PlacementPolicy {
	return PlacementPolicy{
		RTTWeight:           1.0,
		LoadBalanceWeight:   1.0,
		KNNSimilarityWeight: 0.5,
		CentralityWeight:    0.5,
		MinReplicas:         3,
		MaxReplicas:         5,
		TreeEvaluationDepth: 8,
	}
}

// Valid validates the policy's field constraints.
func (p PlacementPolicy) Valid() error {
	if p.RTTWeight < 0 || p.LoadBalanceWeight < 0 || p.KNNSimilarityWeight < 0 || p.CentralityWeight < 0 {
		return ErrInvalidWeight
	}
	if p.MinReplicas <= 0 || p.MaxReplicas < p.MinReplicas || p.MaxReplicas > MaxParityTags {
		return ErrInvalidReplicas
	}
	if p.TreeEvaluationDepth <= 0 {
		return ErrInvalidTreeDepth
	}
	return nil
}

// RoutingConfig parameterizes hybrid and parity-aware next-hop scoring.
type RoutingConfig struct {
	DensityWeight    float64
	SimilarityWeight float64
	CoherenceWeight  float64
	ParityWeight     float64
	UseFHE           bool
}

// DefaultRoutingConfig returns a hybrid configuration weighting density
// and similarity equally (0.4 each) above coherence (0.2), with an even
// parity/hybrid blend.
func DefaultRoutingConfig() RoutingConfig {
	return RoutingConfig{
		DensityWeight:    0.4,
		SimilarityWeight: 0.4,
		CoherenceWeight:  0.2,
		ParityWeight:     0.5,
	}
}

// Valid validates the routing config.
func (r RoutingConfig) Valid() error {
	if r.DensityWeight < 0 || r.SimilarityWeight < 0 || r.CoherenceWeight < 0 {
		return ErrRoutingWeightsNegative
	}
	if r.ParityWeight < 0 || r.ParityWeight > 1 {
		return fmt.Errorf("%w: parity_weight must be in [0,1]", ErrRoutingWeightsNegative)
	}
	return nil
}

// SchedulerConfig parameterizes the background daemon.
type SchedulerConfig struct {
	AnnounceInterval  time.Duration
	RebalanceInterval time.Duration
	IntegrityInterval time.Duration
}

// DefaultSchedulerConfig returns conservative default tick intervals.
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		AnnounceInterval:  5 * time.Second,
		RebalanceInterval: 30 * time.Second,
		IntegrityInterval: 60 * time.Second,
	}
}

// Valid validates the scheduler config.
func (s SchedulerConfig) Valid() error {
	if s.AnnounceInterval <= 0 || s.RebalanceInterval <= 0 || s.IntegrityInterval <= 0 {
		return ErrInvalidInterval
	}
	return nil
}
