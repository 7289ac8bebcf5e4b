package epub

import "strings"

// GetTitle returns the first title.
func (pkg *Package) GetTitle() string {
	if len(pkg.Metadata.Titles) > 0 {
		return pkg.Metadata.Titles[0].Value
	}
	return ""
}

// SetTitle replaces all titles with a single value.
func (pkg *Package) SetTitle(title string) {
	pkg.Metadata.Titles = []SimpleMeta{{Value: title}}
}

// GetAuthor returns the first creator.
func (pkg *Package) GetAuthor() string {
	if len(pkg.Metadata.Creators) > 0 {
		return pkg.Metadata.Creators[0].Value
	}
	return ""
}

// GetAuthors returns all creator values.
func (pkg *Package) GetAuthors() []string {
	var authors []string
	for _, c := range pkg.Metadata.Creators {
		if v := strings.TrimSpace(c.Value); v != "" {
			authors = append(authors, v)
		}
	}
	return authors
}

// SetAuthor replaces all creators with a single author, role "aut".
func (pkg *Package) SetAuthor(name string) {
	pkg.Metadata.Creators = []AuthorMeta{{
		SimpleMeta: SimpleMeta{Value: name},
		Role:       "aut",
	}}
}

// GetDescription returns the description.
func (pkg *Package) GetDescription() string {
	if len(pkg.Metadata.Descriptions) > 0 {
		return pkg.Metadata.Descriptions[0].Value
	}
	return ""
}

// SetDescription sets the description.
func (pkg *Package) SetDescription(desc string) {
	pkg.Metadata.Descriptions = []SimpleMeta{{Value: desc}}
}

// GetSubjects returns all subject/tag values.
func (pkg *Package) GetSubjects() []string {
	var subjects []string
	for _, s := range pkg.Metadata.Subjects {
		subjects = append(subjects, s.Value)
	}
	return subjects
}

// SetSubjects overwrites the subject list.
func (pkg *Package) SetSubjects(tags []string) {
	var subjects []SimpleMeta
	for _, t := range tags {
		subjects = append(subjects, SimpleMeta{Value: t})
	}
	pkg.Metadata.Subjects = subjects
}

// GetLanguage returns the first language.
func (pkg *Package) GetLanguage() string {
	if len(pkg.Metadata.Languages) > 0 {
		return pkg.Metadata.Languages[0].Value
	}
	return ""
}

// SetLanguage sets the language.
func (pkg *Package) SetLanguage(lang string) {
	pkg.Metadata.Languages = []SimpleMeta{{Value: lang}}
}

// GetPublisher returns the publisher name.
func (pkg *Package) GetPublisher() string {
	if len(pkg.Metadata.Publishers) > 0 {
		return pkg.Metadata.Publishers[0].Value
	}
	return ""
}

// SetPublisher sets the publisher name.
func (pkg *Package) SetPublisher(publisher string) {
	pkg.Metadata.Publishers = []SimpleMeta{{Value: publisher}}
}

// GetDate returns the first publication date.
func (pkg *Package) GetDate() string {
	if len(pkg.Metadata.Dates) > 0 {
		return pkg.Metadata.Dates[0].Value
	}
	return ""
}

// SetDate sets the publication date. ISO 8601 dates (YYYY-MM-DD) are the
// conventional form.
func (pkg *Package) SetDate(date string) {
	pkg.Metadata.Dates = []SimpleMeta{{Value: date}}
}

// GetKeywords returns the legacy keywords meta value, if present.
func (pkg *Package) GetKeywords() string {
	return pkg.GetLegacyMeta("keywords")
}

// SetKeywords stores keywords as a legacy <meta name="keywords"> tag. OPF has
// no Dublin Core keywords element; this form is what reading systems look for.
func (pkg *Package) SetKeywords(keywords string) {
	pkg.SetLegacyMeta("keywords", keywords)
}

// GetProducer returns the book producer: a contributor with role "bkp", or
// failing that the generator meta tag.
func (pkg *Package) GetProducer() string {
	for _, c := range pkg.Metadata.Contributors {
		if c.Role == "bkp" {
			return c.Value
		}
	}
	return pkg.GetLegacyMeta("generator")
}

// ClearProducer removes producer and generator markers left behind by
// conversion tools.
func (pkg *Package) ClearProducer() {
	var contribs []AuthorMeta
	for _, c := range pkg.Metadata.Contributors {
		if c.Role != "bkp" {
			contribs = append(contribs, c)
		}
	}
	pkg.Metadata.Contributors = contribs

	var metas []Meta
	for _, m := range pkg.Metadata.Meta {
		if m.Name != "generator" {
			metas = append(metas, m)
		}
	}
	pkg.Metadata.Meta = metas
}

// GetLegacyMeta returns the content of an EPUB 2 style <meta name=...> tag.
func (pkg *Package) GetLegacyMeta(name string) string {
	for _, m := range pkg.Metadata.Meta {
		if m.Name == name {
			return m.Content
		}
	}
	return ""
}

// SetLegacyMeta sets or adds an EPUB 2 style <meta name=... content=...> tag.
func (pkg *Package) SetLegacyMeta(name, content string) {
	for i, m := range pkg.Metadata.Meta {
		if m.Name == name {
			pkg.Metadata.Meta[i].Content = content
			return
		}
	}
	pkg.Metadata.Meta = append(pkg.Metadata.Meta, Meta{Name: name, Content: content})
}
