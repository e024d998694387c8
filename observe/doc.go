// Package observe provides wastar.Observer implementations that forward
// planner progress reports to a zerolog logger or to Prometheus metrics.
package observe
