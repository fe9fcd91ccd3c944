package facet

import "crowd-status/models/venue"

func testVenues() []venue.Venue {
	return []venue.Venue{
		{
			ID:         "store_1",
			Name:       "８２ 三田店",
			NameEn:     "82 Mita",
			Address:    "東京都港区芝5-1",
			Region:     "関東",
			Prefecture: "東京都",
			City:       "港区",
			Matches: []venue.Match{
				{Date: "2026-02-14", Sport: "サッカー", Match: "日本 vs 韓国 (20:00)", MatchEn: "Japan vs Korea (20:00)",
					Status: venue.SeatStatus{Table: "〇", Standing: "△"}},
				{Date: "2026-02-14", Sport: "サッカー", Match: "日本 vs 米国 (9:30)", MatchEn: "Japan vs USA (9:30)",
					Status: venue.SeatStatus{Table: "×", Standing: "未使用"}},
				{Date: "2026-02-11", Sport: "野球", Match: "巨人 vs 阪神", MatchEn: "Giants vs Tigers",
					Status: venue.SeatStatus{Table: "△", Standing: "〇"}},
			},
		},
		{
			ID:         "store_2",
			Name:       "HUB 梅田店",
			NameEn:     "HUB Umeda",
			Address:    "大阪府大阪市北区",
			Region:     "近畿",
			Prefecture: "大阪府",
			City:       "大阪市",
			Matches: []venue.Match{
				{Date: "2026-02-12", Sport: "ラグビー", Match: "日本 vs 英国（19：00）", MatchEn: "Japan vs England (19:00)",
					Status: venue.SeatStatus{Table: "〇", Standing: "〇"}},
				{Date: "2026-02-14", Sport: "サッカー", Match: "日本 vs 韓国 (20:00)", MatchEn: "Japan vs Korea (20:00)",
					Status: venue.SeatStatus{Table: "満席", Standing: "×"}},
			},
		},
		{
			ID:         "store_3",
			Name:       "HUB 渋谷店",
			Address:    "東京都渋谷区",
			Region:     "関東",
			Prefecture: "東京都",
			City:       "渋谷区",
			Matches: []venue.Match{
				{Date: "2026-02-13", Sport: "バスケットボール", Match: "Bリーグ 注目対戦 (18:05)",
					Status: venue.SeatStatus{Table: "×", Standing: "－"}},
			},
		},
	}
}

func resultIDs(results []VenueResult) []string {
	ids := make([]string, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.Venue.ID)
	}
	return ids
}

func venueIDs(venues []venue.Venue) []string {
	ids := make([]string, 0, len(venues))
	for _, v := range venues {
		ids = append(ids, v.ID)
	}
	return ids
}
