// Package api implements driven.SchoolAPI over the school-management
// backend's REST interface.
//
// Each endpoint has its own decoder translating the wire payload into
// exactly one canonical domain shape. Decoders fail explicitly on
// malformed payloads (wrapping domain.ErrMalformedResponse) instead of
// probing for fields; transport failures that indicate a connectivity
// problem wrap domain.ErrBackendUnavailable so the aggregator can surface
// them as the single user-visible failure class.
package api
