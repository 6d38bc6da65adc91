package models

func NewTitleResponse(t *Title) TitleResponse {
	resp := TitleResponse{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Description: t.Description,
		Genre:       t.Genres,
		Category:    t.Category,
	}
	if resp.Genre == nil {
		resp.Genre = []Genre{}
	}
	// Rating is the integer part of the mean score.
	if t.Rating != nil {
		rating := int(*t.Rating)
		resp.Rating = &rating
	}
	return resp
}

func NewTitleWriteResponse(t *Title) TitleWriteResponse {
	resp := TitleWriteResponse{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Description: t.Description,
		Genre:       make([]string, 0, len(t.Genres)),
	}
	for _, g := range t.Genres {
		resp.Genre = append(resp.Genre, g.Slug)
	}
	if t.Category != nil {
		slug := t.Category.Slug
		resp.Category = &slug
	}
	return resp
}

func NewReviewResponse(r *Review) ReviewResponse {
	return ReviewResponse{
		ID:      r.ID,
		Text:    r.Text,
		Score:   r.Score,
		Author:  r.Author.Username,
		PubDate: r.PubDate,
		Title:   r.TitleID,
	}
}

func NewCommentResponse(c *Comment) CommentResponse {
	resp := CommentResponse{
		ID:      c.ID,
		Author:  c.Author.Username,
		Text:    c.Text,
		PubDate: c.PubDate,
	}
	if c.Review != nil {
		resp.Review = c.Review.Text
	}
	return resp
}
