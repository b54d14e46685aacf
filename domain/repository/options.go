package repository

// WithName filters by the "name" column.
func WithName(name string) Option {
	return WithCondition("name", name)
}

// WithNamePrefix filters rows whose name starts with prefix.
func WithNamePrefix(prefix string) Option {
	return WithConditionPrefix("name", prefix)
}

// WithNameIn filters by the "name" column using IN.
func WithNameIn(names []string) Option {
	return WithConditionIn("name", names)
}

// WithLineID filters by the "line_id" column.
func WithLineID(id int64) Option {
	return WithCondition("line_id", id)
}

// WithColor filters by the "color" column.
func WithColor(color string) Option {
	return WithCondition("color", color)
}
