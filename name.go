// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import "strings"

// DefaultNamespace is the namespace of component names given without one.
//
const DefaultNamespace = "default"

// Name is a namespace qualified component name.
//
type Name struct {
	Namespace string
	Name      string
}

// ParseName parses a name of the form "namespace:name". The namespace ends at
// the first colon. If there is none, the namespace is DefaultNamespace.
//
func ParseName(s string) Name {
	ns, n, ok := strings.Cut(s, ":")
	if !ok {
		return Name{DefaultNamespace, s}
	}
	return Name{ns, n}
}

func (n Name) String() string {
	return n.Namespace + ":" + n.Name
}
