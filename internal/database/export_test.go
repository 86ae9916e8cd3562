package database

// DB exposes the underlying connection to the external test package.
func (q *Queries) DB() DBTX { return q.db }
