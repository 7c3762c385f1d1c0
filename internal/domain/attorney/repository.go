package attorney

import "context"

// Repository defines read access to the attorney roster.
type Repository interface {
	List(ctx context.Context) ([]*Attorney, error)
}
