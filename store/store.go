// Package store is the durable key-value persistence port behind sessions.
// Values are JSON encoded; a call either fully applies or fails.
package store

import (
	"context"
	"errors"
)

// Session keys, kept identical to the names the dashboard front end uses.
const (
	KeyUser            = "user"
	KeyUserRole        = "user_role"
	KeyProjectName     = "project_name"
	KeyProjectCode     = "project_code"
	KeyUserProjects    = "user_projects"
	KeySelectedProject = "selected_project"
)

// SessionKeys lists every key a logout must clear.
var SessionKeys = []string{
	KeyUser,
	KeyUserRole,
	KeyProjectName,
	KeyProjectCode,
	KeyUserProjects,
	KeySelectedProject,
}

var ErrNotFound = errors.New("store: key not found")

// KV is a string-keyed, JSON-valued store.
type KV interface {
	Get(ctx context.Context, key string, dst any) error
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, keys ...string) error
}

type prefixed struct {
	kv     KV
	prefix string
}

// Prefixed namespaces every key of kv under prefix.
func Prefixed(kv KV, prefix string) KV {
	return &prefixed{kv: kv, prefix: prefix}
}

// ForSession scopes kv to a single login session.
func ForSession(kv KV, sessionID string) KV {
	return Prefixed(kv, "session:"+sessionID+":")
}

func (p *prefixed) Get(ctx context.Context, key string, dst any) error {
	return p.kv.Get(ctx, p.prefix+key, dst)
}

func (p *prefixed) Set(ctx context.Context, key string, value any) error {
	return p.kv.Set(ctx, p.prefix+key, value)
}

func (p *prefixed) Delete(ctx context.Context, keys ...string) error {
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = p.prefix + k
	}
	return p.kv.Delete(ctx, full...)
}
