package structs

// Options passed to the gofer service on creation.
type Options struct {
	// MaxDependencies is the hard cap on outgoing dependency edges
	// per job. Adding one past this fails. Default 10.
	MaxDependencies int

	// WarnDependencies is the count at which adding a dependency logs
	// a warning but still succeeds. Default 5.
	WarnDependencies int

	// ScriptExtensions whitelists script extensions for the default
	// validator (eg. ".sh"). Empty accepts any executable file.
	ScriptExtensions []string
}
