// Package github resolves user-supplied URLs into repository locations and
// fetches skill content from the GitHub API. It handles branch discovery
// with main/master fallback, single-file fetches via the contents and blob
// endpoints, recursive directory downloads, and plain HTTP downloads for
// non-GitHub URLs. An optional bearer token raises API rate limits; it is
// threaded through the client explicitly, never ambient state.
package github
