package repository

import (
	"fmt"

	"bookjournal-backend/internal/domains/visibility"
	"bookjournal-backend/internal/shared/utils"
)

// ========================================
// VISIBILITY PREDICATE (SQL)
// ========================================
// Mirrors visibility.ContentVisible so listings can be filtered in the
// database. Expects aliases: e = entries, p = profiles (of e.author_id).
// The service re-applies the Go policy to every row it returns.

// visiblePredicate renders the WHERE fragment restricting entries to what
// viewer may see. With ownDrafts=false the viewer's own drafts are excluded
// too (feed), otherwise the author sees every entry they wrote.
func visiblePredicate(viewer visibility.Viewer, args *utils.Args, ownDrafts bool) string {
	published := "e.status = 'published'"
	public := fmt.Sprintf("(p.journal_visibility = %d AND e.visibility = %d)",
		visibility.Public, visibility.Public)

	if !viewer.Authenticated() {
		return "(" + published + " AND " + public + ")"
	}

	me := args.Add(viewer.ID)
	followed := fmt.Sprintf(
		"(p.journal_visibility >= %d AND e.visibility >= %d AND EXISTS ("+
			"SELECT 1 FROM follow_edges fe WHERE fe.from_user_id = %s AND fe.to_user_id = e.author_id))",
		visibility.Followers, visibility.Followers, me)

	own := "e.author_id = " + me
	if !ownDrafts {
		own = "(" + own + " AND " + published + ")"
	}

	return "(" + utils.JoinWithOr([]string{
		own,
		"(" + published + " AND " + utils.JoinWithOr([]string{public, followed}) + ")",
	}) + ")"
}
