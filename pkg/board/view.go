package board

// PostView is one post as it is shown: content with its like count, whether
// this store already liked it, and its comments.
type PostView struct {
	ID       int64    `json:"id" yaml:"id"`
	Content  string   `json:"content" yaml:"content"`
	Likes    int      `json:"likes" yaml:"likes"`
	Liked    bool     `json:"liked" yaml:"liked"`
	Comments []string `json:"comments" yaml:"comments"`
}

// View is the renderable state of the board.
type View struct {
	LoggedIn bool       `json:"logged_in" yaml:"logged_in"`
	Draft    string     `json:"draft,omitempty" yaml:"draft,omitempty"`
	Posts    []PostView `json:"posts" yaml:"posts"`
}

// View builds the render model of the board.
func (b *Board) View() View {
	v := View{
		LoggedIn: b.session.LoggedIn,
		Draft:    b.session.Draft,
		Posts:    make([]PostView, 0, len(b.state.Posts)),
	}
	for _, p := range b.state.Posts {
		v.Posts = append(v.Posts, PostView{
			ID:       p.ID,
			Content:  p.Content,
			Likes:    b.state.Likes[p.ID],
			Liked:    b.state.HasLiked(p.ID),
			Comments: b.Comments(p.ID),
		})
	}
	return v
}
