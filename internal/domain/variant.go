package domain

type VariantInfo struct {
	Slug        string
	Name        string
	Description string
}

var catalog = []struct {
	variant Variant
	info    VariantInfo
}{
	{Classic, VariantInfo{Slug: "classic", Name: "Classic", Description: "The original 3x3 grid game."}},
	{Poof, VariantInfo{Slug: "poof", Name: "Poof", Description: "Disappearing moves, no draws. Master new strategies."}},
	{CrissCross, VariantInfo{Slug: "crisscross", Name: "Criss Cross", Description: "Build crosses, connect three. A strategic 2D challenge."}},
}

func Variants() []VariantInfo {
	infos := make([]VariantInfo, 0, len(catalog))
	for _, v := range catalog {
		infos = append(infos, v.info)
	}
	return infos
}

func ParseVariant(slug string) (Variant, bool) {
	for _, v := range catalog {
		if v.info.Slug == slug {
			return v.variant, true
		}
	}
	return UnknownVariant, false
}

func (v Variant) String() string {
	for _, c := range catalog {
		if c.variant == v {
			return c.info.Slug
		}
	}
	return "unknown"
}
