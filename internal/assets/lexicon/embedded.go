package lexiconassets

import _ "embed"

// YAML is the default inference lexicon compiled into the binary. It is used
// when inference.lexicon_path is not set.
//
//go:embed lexicon.yaml
var YAML []byte
