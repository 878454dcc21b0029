package sqlite

import "strings"

// LikeEscape is the escape character paired with LikePattern.
const LikeEscape = `\`

var likeReplacer = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// LikePattern wraps term for a literal substring match:
// col LIKE ? ESCAPE '\'
func LikePattern(term string) string {
	return "%" + likeReplacer.Replace(term) + "%"
}
