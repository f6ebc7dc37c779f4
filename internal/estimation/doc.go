// Package estimation computes the network improvement a customer can expect from a set of
// optimization services.
//
// Each improvement dimension (latency, packet loss, bandwidth) is handled by one Calculator.
// The Engine validates the input, runs the registered calculators and aggregates their
// results together with the monthly cost and the return-on-investment estimate.
// Every computation is pure: the same Input always yields the same Result.
package estimation
