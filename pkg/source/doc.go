// Package source reads pod addresses from a Kubernetes cluster, either via
// kubectl or the API server, and address entries from plain text files.
package source
