// Package tenant provides the request-scoped current-tenant slot used to
// partition data visibility in the multi-tenant portal.
//
// The slot is an explicit per-request Scope carried as a context value, not
// an ambient global: the request interceptor allocates it, fills it from the
// token's companyId claim before authentication, and clears it on every exit
// path. Downstream data-access code reads the value through CurrentTenant.
package tenant
