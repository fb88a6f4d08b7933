package circle

// Member 社区平台返回的成员信息
type Member struct {
	ID            int64         `json:"id"`
	Email         string        `json:"email"`
	Name          string        `json:"name"`
	AvatarURL     string        `json:"avatar_url"`
	Bio           string        `json:"bio"`
	Headline      string        `json:"headline"`
	Location      string        `json:"location"`
	Website       string        `json:"website"`
	PostsCount    int           `json:"posts_count"`
	CommentsCount int           `json:"comments_count"`
	ActivityScore ActivityScore `json:"activity_score"`
	Tags          []MemberTag   `json:"member_tags"`
	Spaces        []MemberSpace `json:"spaces"`
}

// ActivityScore 综合活跃度及其四个子项
type ActivityScore struct {
	Total    float64 `json:"total"`
	Posts    float64 `json:"posts"`
	Comments float64 `json:"comments"`
	Likes    float64 `json:"likes"`
	Presence float64 `json:"presence"`
}

// MemberTag 成员标签，落库后即为徽章
type MemberTag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// MemberSpace 成员所在的社区空间
type MemberSpace struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// MemberRequest 创建/更新成员的请求体
type MemberRequest struct {
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Bio       string `json:"bio,omitempty"`
	Headline  string `json:"headline,omitempty"`
	Location  string `json:"location,omitempty"`
	Website   string `json:"website,omitempty"`
}

// searchResponse 成员搜索接口的响应
type searchResponse struct {
	Records []Member `json:"records"`
}
