package ability

// Identity is the part of a user the rules depend on.
type Identity struct {
	ID      uint
	IsAdmin bool
}

// ForUser builds the ability of a caller. Admins manage everything; everyone else
// reads everything and writes only what they own.
func ForUser(user Identity) *Ability {
	b := NewBuilder()

	if user.IsAdmin {
		b.Can(Manage, All)
		return b.Build()
	}

	b.Can(Read, All)

	b.Cannot(Create, Category).Because("Only admins can create categories")
	b.Cannot(Update, Category).Because("Only admins can update categories")
	b.Cannot(Delete, Category).Because("Only admins can delete categories")

	b.Cannot(Create, Tag).Because("Only admins can create tags")
	b.Cannot(Update, Tag).Because("Only admins can update tags")
	b.Cannot(Delete, Tag).Because("Only admins can delete tags")

	b.Can(Create, Post)
	b.Can(Update, Post)
	b.Cannot(Update, Post, AuthorIsNot(user.ID)).Because("You cannot update posts you don't own")

	b.Can(Delete, Post)
	b.Cannot(Delete, Post, AuthorIsNot(user.ID)).Because("You cannot delete posts you don't own")
	b.Cannot(Delete, Post, IsPublished()).Because("Published posts can only be deleted by admins")

	b.Can(Create, Comment)
	b.Can(Update, Comment)
	b.Cannot(Update, Comment, AuthorIsNot(user.ID)).Because("You cannot update comments you don't own")

	b.Can(Delete, Comment)
	b.Cannot(Delete, Comment, AuthorIsNot(user.ID)).Because("You cannot delete comments you don't own")

	return b.Build()
}
