package types

// Filter agrupa los parámetros de listado que llegan por query string.
type Filter struct {
	Search         string
	Limit          int
	Offset         int
	Page           int
	WithPagination bool
}
