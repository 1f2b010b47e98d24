// Package pronouns builds the selectable pronoun strings for each supported
// signature language.
//
// A Table maps a language code to a Scheme. Two-part schemes produce the
// cartesian product of subject and object forms ("he/him", "he/her", ...)
// in subject-major order; one-part schemes return the subject forms as-is.
//
//	lists, err := pronouns.Default.Filter([]string{"en", "de"})
//	if err != nil {
//	    // operator configured a language the table does not know
//	}
//	for _, l := range lists {
//	    fmt.Println(l.Language, l.Values)
//	}
package pronouns
