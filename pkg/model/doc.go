// Package model defines the payloads exchanged with the remote analysis
// service: the AnalysisRequest built from the form on every submission and the
// AnalysisResult rendered back into the view. Optional preference fields use
// Optional[T] so "not provided" (JSON null) can never be confused with a
// provided-but-empty value.
package model
