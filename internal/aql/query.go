// Package aql builds Artifactory Query Language requests.
package aql

import (
	"fmt"
	"strings"
)

// Fields is the projection requested for every item. "stat" makes the
// server attach download statistics under the "stats" key.
var Fields = []string{
	"name",
	"repo",
	"path",
	"type",
	"size",
	"created",
	"created_by",
	"modified",
	"modified_by",
	"updated",
	"stat",
}

// ItemsByRepository returns a query selecting every item in repository.
// The name is not validated; the server rejects malformed input.
func ItemsByRepository(repository string) string {
	quoted := make([]string, len(Fields))
	for i, f := range Fields {
		quoted[i] = fmt.Sprintf("%q", f)
	}
	return fmt.Sprintf("items.find({\n    \"repo\": \"%s\"\n}).include(%s)\n",
		repository, strings.Join(quoted, ", "))
}
