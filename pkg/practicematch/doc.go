// Package practicematch picks the canonical practice area that best
// represents an attorney, given the free-text practice labels their profile
// was tagged with.
//
// Quick start:
//
//	m, err := practicematch.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	area, ok := m.SelectPrimaryArea([]string{"Labor", "Employment Law"})
//	fmt.Println(area, ok) // labor-employment true
//
// Labels are normalized (case, diacritics, "&", punctuation), scored
// against weighted whole-word patterns per area, and ranked by score then
// priority. When the best score is below the threshold no area is
// returned.
//
// A Matcher is immutable and safe for concurrent use. Create once, reuse
// across requests.
package practicematch
