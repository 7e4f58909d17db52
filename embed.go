package focusflow

import "embed"

// ResourcesFS contains the markdown resources seeded into an empty database.
// Each file carries title, type, category and tags as YAML frontmatter.
//
//go:embed content/resources/*.md
var ResourcesFS embed.FS
