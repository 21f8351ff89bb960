// Package session persists translation contexts across calls, giving
// interactive hosts durable namespace activation and local definitions.
// One session owns one context; access is single-writer by contract.
package session
