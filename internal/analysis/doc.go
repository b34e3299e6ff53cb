// Package analysis summarizes recorded metric series: linear drift over time
// and the power spectrum of what remains.
package analysis
