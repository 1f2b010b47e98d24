// Package signature fills signature templates with user-entered values.
//
// Templates are plain text or HTML containing placeholder tokens:
//
//	{{name}} {{email}} {{phone}} {{address}} {{pronouns}}
//	{{position}} {{all_positions}}
//
// Scalar tokens and {{all_positions}} are filled at their first occurrence.
// {{position}} is a repeatable slot: each occurrence takes the next selected
// position, up to the organization's position limit. Every token left over
// is removed, so output never contains unresolved placeholders.
//
//	out := signature.Fill(tpl, signature.Values{
//		Name:         ptr("Jane Doe"),
//		Positions:    []int{0, 2},
//		MaxPositions: org.MaxPositions,
//	}, "en", org.Positions, signature.GenderFemale)
//
// Use RenderHTML for HTML templates: values are escaped and the result is
// passed through the signature sanitizer.
package signature
