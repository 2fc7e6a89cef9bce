// File: lixenwraith/taskrc/doc.go

// Package taskrc reads Taskwarrior configuration files (.taskrc) into an immutable
// tree and resolves the user-defined attributes (UDAs) declared in them.
//
// Format:
//
//	data.location=~/.task   # comments start at the first '#'
//	uda.priority.type=string
//	uda.priority.values=H,M,L,
//
// Each line is split on its first '='. The key is split on '.', and every segment but
// the last becomes a subtree stored under "segment." (note the trailing marker), so a
// leaf "alpha" and a subtree "alpha." can coexist. Lines without '=' are logged and
// skipped; they never abort parsing. Values are kept as strings.
//
// Quick Start:
//
//	rc, err := taskrc.Load(os.ExpandEnv("$HOME/.taskrc"))
//	if err != nil && !errors.Is(err, taskrc.ErrConfigNotFound) {
//	    log.Fatal(err)
//	}
//
//	loc, _ := rc.Lookup("data.location")
//	for name, field := range rc.TypedFields() {
//	    fmt.Println(name, field)
//	}
//
// Builder:
//
//	rc, err := taskrc.NewBuilder().
//	    WithFileDiscovery(taskrc.DefaultDiscoveryOptions()).
//	    WithLogger(logger).
//	    WithOverrides(map[string]string{"verbose": "off"}).
//	    Build()
//
// Overrides (rc.<key>=<value> arguments, explicit maps, TOML/YAML/JSON files) are kept
// beside the tree and consulted by Setting and the typed getters. They never change
// the parsed tree.
//
// Thread Safety:
// A built TaskRc and its Tree are never mutated; Set, Delete and Update return
// ErrImmutable. Concurrent readers need no locking.
package taskrc
