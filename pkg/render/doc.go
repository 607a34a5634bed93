// Package render turns an AnalysisResult into display content: nutrient
// cards with status badges and requirement bars, the recommendation list, a
// plain-text report and a full page snapshot. HTML goes through embedded
// pongo2 templates; strings supplied by the analysis service are stripped of
// markup before they reach a template.
package render
