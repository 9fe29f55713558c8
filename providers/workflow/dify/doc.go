// Package dify implements workflow.Provider for the Dify workflow API
// (POST /workflows/run in blocking mode).
//
// Dify deployments differ in where the generated text ends up in the
// response, so [ExtractPayload] probes the known locations in a fixed order.
package dify
