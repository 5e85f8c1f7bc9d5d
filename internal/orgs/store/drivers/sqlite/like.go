package sqlite

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes term match literally inside LIKE '%' || ? || '%' ESCAPE '\'.
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}
