// Package checks provides ready-made metric sources for plugins.
package checks
