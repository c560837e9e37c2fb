// Copyright (C) 2025 sage-x-project
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.

// SPDX-License-Identifier: LGPL-3.0-or-later

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PackOperations counts Crypto.Pack/Unpack calls by direction and outcome.
	PackOperations = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "crypto",
			Name:      "pack_operations_total",
			Help:      "Total number of pack/unpack operations",
		},
		[]string{"direction", "status"}, // pack|unpack, ok|error
	)

	// PackDuration tracks pack/unpack latency.
	PackDuration = promauto.With(Registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "crypto",
			Name:      "pack_duration_seconds",
			Help:      "Pack/unpack duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"direction"},
	)

	// AgencyRoundTrips counts AgencyClient requests by operation and outcome.
	AgencyRoundTrips = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "agency",
			Name:      "round_trips_total",
			Help:      "Total number of agency client round trips",
		},
		[]string{"operation", "status"}, // send_secure|download_messages|update_msg_status, ok|error
	)

	// AgencyRoundTripDuration tracks agency HTTP round-trip latency.
	AgencyRoundTripDuration = promauto.With(Registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "agency",
			Name:      "round_trip_duration_seconds",
			Help:      "Agency client round-trip duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// ProverTransitions counts ProverSM state transitions.
	ProverTransitions = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "prover",
			Name:      "transitions_total",
			Help:      "Total number of Prover state machine transitions",
		},
		[]string{"from", "to"},
	)

	// ProverFinished counts terminal Prover outcomes.
	ProverFinished = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "prover",
			Name:      "finished_total",
			Help:      "Total number of Prover state machines reaching Finished",
		},
		[]string{"status"}, // success|failed
	)
)
