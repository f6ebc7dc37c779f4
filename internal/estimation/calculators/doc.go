// Package calculators provides the improvement calculators registered in the estimation engine.
//
// A Dimension calculator sums the coefficients of the selected services for one network metric,
// clamps the sum to the dimension cap and applies the ratio to the baseline value. Latency and
// packet loss are reduced by the ratio, bandwidth is increased by it.
package calculators
