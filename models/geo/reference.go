// models/geo/reference.go
package geo

import "fmt"

// Reference is the canonical region -> prefecture -> city containment table.
type Reference struct {
    Regions           []string            `json:"regions"`
    RegionPrefectures map[string][]string `json:"region_prefectures"`
    PrefectureCities  map[string][]string `json:"prefecture_cities"`
}

// Default returns the built-in table. City lists exist only for some
// prefectures; prefectures without one accept any city.
func Default() *Reference {
    return &Reference{
        Regions: []string{"北海道", "東北", "関東", "中部", "近畿", "中国", "四国", "九州"},
        RegionPrefectures: map[string][]string{
            "北海道": {"北海道"},
            "東北":  {"宮城県", "福島県", "山形県", "岩手県", "秋田県", "青森県"},
            "関東":  {"東京都", "埼玉県", "千葉県", "神奈川県", "茨城県", "栃木県", "群馬県"},
            "中部":  {"愛知県", "静岡県", "岐阜県", "三重県", "山梨県", "長野県", "新潟県", "富山県", "石川県", "福井県"},
            "近畿":  {"大阪府", "京都府", "兵庫県", "奈良県", "滋賀県", "和歌山県"},
            "中国":  {"広島県", "岡山県", "鳥取県", "島根県", "山口県"},
            "四国":  {"香川県", "徳島県", "愛媛県", "高知県"},
            "九州":  {"福岡県", "佐賀県", "長崎県", "熊本県", "大分県", "宮崎県", "鹿児島県", "沖縄県"},
        },
        PrefectureCities: map[string][]string{
            "東京都": {
                "港区", "渋谷区", "新宿区", "千代田区", "足立区", "台東区", "大田区", "中央区",
                "品川区", "文京区", "豊島区", "墨田区", "町田市", "八王子市", "武蔵野市", "立川市",
            },
            "兵庫県": {"神戸市", "西宮市", "尼崎市", "姫路市"},
            "福岡県": {"福岡市", "北九州市", "久留米市"},
        },
    }
}

// Issue describes one containment violation.
type Issue struct {
    Field string
    Value string
    Msg   string
}

func (i Issue) String() string {
    return fmt.Sprintf("%s=%q: %s", i.Field, i.Value, i.Msg)
}

// RegionOf returns the region that contains prefecture.
func (r *Reference) RegionOf(prefecture string) (string, bool) {
    for region, prefs := range r.RegionPrefectures {
        if contains(prefs, prefecture) {
            return region, true
        }
    }
    return "", false
}

// Validate checks one venue's geography against the table. Empty fields are
// not checked.
func (r *Reference) Validate(region, prefecture, city string) []Issue {
    var issues []Issue
    if region != "" {
        if _, ok := r.RegionPrefectures[region]; !ok {
            issues = append(issues, Issue{Field: "region", Value: region, Msg: "unknown region"})
        }
    }
    if prefecture != "" {
        owner, ok := r.RegionOf(prefecture)
        switch {
        case !ok:
            issues = append(issues, Issue{Field: "prefecture", Value: prefecture, Msg: "unknown prefecture"})
        case region != "" && owner != region:
            issues = append(issues, Issue{Field: "prefecture", Value: prefecture, Msg: "belongs to region " + owner})
        }
    }
    if city != "" && prefecture != "" {
        if cities, ok := r.PrefectureCities[prefecture]; ok && !contains(cities, city) {
            issues = append(issues, Issue{Field: "city", Value: city, Msg: "not listed for prefecture " + prefecture})
        }
    }
    return issues
}

func contains(list []string, v string) bool {
    for _, s := range list {
        if s == v {
            return true
        }
    }
    return false
}
