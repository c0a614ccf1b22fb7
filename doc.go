// Package twempest renders a user's posts through a text template, to the
// console or to files, optionally downloading embedded photos alongside.
//
// # Quick Start
//
// Compile a renderer once and feed it posts in chronological order:
//
//	r, err := twempest.NewRenderer(twempest.RenderOptions{
//	    RenderPath: "posts/{{ .CreatedAt | isodate }}",
//	    RenderFile: "{{ .ID }}.md",
//	    ImagePath:  "images",
//	}, "{{ .Text | delink }}")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := r.Render(ctx, slices.Values(posts))
//
// # Templates
//
// Templates use text/template syntax with the post as data. Filters are bound
// to the post being rendered, so they know its entities:
//
//	{{ .Text | delink }}                 hashtags unmarked, short links removed
//	{{ .Text | reimage "<img src=\"{{.url}}\" alt=\"{{.alt}}\">" }}
//	{{ .Text | relink "[{{.text}}]({{.url}})" }}
//	{{ .CreatedAt | isodate }}           2024-03-09
//	{{ .CreatedAt | dateformat "DD/MM/YYYY" }}
//	{{ .Text | slugify }}                lowercase-ascii-words
//	{{ .Text | markdown }}               HTML fragment
//
// # Render Pipeline
//
// Each post goes through these stages, strictly in order:
//
//  1. Normalization (full text, local time zone)
//  2. Reply filtering unless RenderOptions.Replies is set
//  3. Render file selection, or the console
//  4. Photo download and rewrite when ImagePath is set
//  5. Overwrite protection unless RenderOptions.Append is set
//  6. Template expansion
//  7. Skip pattern check, which deletes the post's new images
//  8. Write and bookkeeping
//
// Warnings go through a ReportFunc and never stop the run. Fatal errors match
// the sentinels in errors.go with errors.Is.
package twempest
