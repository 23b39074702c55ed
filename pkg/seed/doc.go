// Package seed bootstraps an organization's authorization data: a default
// permission catalog loaded from an embedded definitions file and a pair of
// stock roles every new organization starts with. Every operation is
// idempotent, so seeding runs unconditionally on process start and again
// whenever an organization is created.
package seed
