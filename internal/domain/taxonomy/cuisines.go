package taxonomy

// CuisineType ユーザー向けの料理ジャンルとPOIコードの対応
type CuisineType struct {
	Code     string
	Name     string
	Keywords []string
}

// CuisineTypes キーワードからPOIコードを引くための料理ジャンル一覧
// 先頭から順に評価され、最初に一致したものが採用される
var CuisineTypes = []CuisineType{
	// 中華
	{Code: "050102", Name: "川菜", Keywords: []string{"川菜", "麻辣", "四川"}},
	{Code: "050103", Name: "粤菜", Keywords: []string{"粤菜", "广东", "广州"}},
	{Code: "050108", Name: "湘菜", Keywords: []string{"湘菜", "湖南", "湘"}},
	{Code: "050104", Name: "鲁菜", Keywords: []string{"鲁菜", "山东"}},
	{Code: "050105", Name: "苏菜", Keywords: []string{"苏菜", "江苏"}},
	{Code: "050106", Name: "浙菜", Keywords: []string{"浙菜", "浙江"}},
	{Code: "050113", Name: "东北菜", Keywords: []string{"东北菜", "东北"}},
	{Code: "050114", Name: "云贵菜", Keywords: []string{"云南菜", "贵州菜", "云贵"}},

	// 火鍋・特色
	{Code: "050117", Name: "火锅店", Keywords: []string{"火锅", "涮锅"}},
	{Code: "050119", Name: "海鲜酒楼", Keywords: []string{"海鲜", "海鲜酒楼"}},
	{Code: "050120", Name: "中式素菜馆", Keywords: []string{"素食", "素菜"}},
	{Code: "050121", Name: "清真菜馆", Keywords: []string{"清真", "回民"}},

	// 外国料理
	{Code: "050202", Name: "日本料理", Keywords: []string{"日本", "料理", "日料", "寿司"}},
	{Code: "050203", Name: "韩国料理", Keywords: []string{"韩国", "料理", "韩式", "烤肉"}},
	{Code: "050206", Name: "泰国/越南菜品", Keywords: []string{"泰国菜", "越南菜", "泰式", "越式"}},
	{Code: "050201", Name: "西餐厅", Keywords: []string{"西餐", "西式"}},
	{Code: "050204", Name: "法式菜品", Keywords: []string{"法国菜", "法式"}},
	{Code: "050205", Name: "意式菜品", Keywords: []string{"意大利菜", "意式"}},

	// ファストフード
	{Code: "050301", Name: "肯德基", Keywords: []string{"肯德基", "KFC"}},
	{Code: "050302", Name: "麦当劳", Keywords: []string{"麦当劳", "M记"}},
	{Code: "050303", Name: "必胜客", Keywords: []string{"必胜客", "披萨"}},
	{Code: "050309", Name: "吉野家", Keywords: []string{"吉野家", "日式快餐"}},

	// カフェ・飲み物
	{Code: "050501", Name: "星巴克咖啡", Keywords: []string{"星巴克", "Starbucks"}},
	{Code: "050500", Name: "咖啡厅", Keywords: []string{"咖啡", "coffee", "cafe"}},
	{Code: "050600", Name: "茶艺馆", Keywords: []string{"茶", "茶艺", "奶茶"}},
	{Code: "050900", Name: "甜品店", Keywords: []string{"甜品", "蛋糕"}},

	// カジュアル
	{Code: "050305", Name: "茶餐厅", Keywords: []string{"茶餐厅", "港式"}},
	{Code: "050400", Name: "休闲餐饮场所", Keywords: []string{"休闲餐饮", "简餐"}},
}

// CuisineAlias ユーザーが選ぶジャンル名と、店舗カテゴリ側で使われる表記の対応
type CuisineAlias struct {
	Cuisine string
	Names   []string
}

// CuisineNameMap ジャンル名の同義語表（宣言順がMatchingCuisinesの出力順になる）
var CuisineNameMap = []CuisineAlias{
	{Cuisine: "川菜", Names: []string{"川菜", "四川菜", "麻辣"}},
	{Cuisine: "粤菜", Names: []string{"粤菜", "广东菜", "广州菜"}},
	{Cuisine: "湘菜", Names: []string{"湘菜", "湖南菜"}},
	{Cuisine: "鲁菜", Names: []string{"鲁菜", "山东菜"}},
	{Cuisine: "苏菜", Names: []string{"苏菜", "江苏菜"}},
	{Cuisine: "浙菜", Names: []string{"浙菜", "浙江菜"}},
	{Cuisine: "闽菜", Names: []string{"闽菜", "福建菜"}},
	{Cuisine: "徽菜", Names: []string{"徽菜", "安徽菜"}},
	{Cuisine: "京菜", Names: []string{"京菜", "北京菜"}},
	{Cuisine: "沪菜", Names: []string{"沪菜", "上海菜"}},
	{Cuisine: "东北菜", Names: []string{"东北菜"}},
	{Cuisine: "云贵菜", Names: []string{"云贵菜", "云南菜", "贵州菜"}},
	{Cuisine: "西北菜", Names: []string{"西北菜"}},
	{Cuisine: "日料", Names: []string{"日本料理", "日料", "日式料理"}},
	{Cuisine: "韩料", Names: []string{"韩国料理", "韩料", "韩式料理"}},
	{Cuisine: "西餐", Names: []string{"西餐厅", "西餐", "西式料理"}},
	{Cuisine: "火锅", Names: []string{"火锅店", "火锅"}},
	{Cuisine: "海鲜", Names: []string{"海鲜酒楼", "海鲜"}},
	{Cuisine: "素食", Names: []string{"中式素菜馆", "素食", "素菜"}},
	{Cuisine: "清真", Names: []string{"清真菜馆", "清真"}},
	{Cuisine: "咖啡", Names: []string{"咖啡厅", "咖啡"}},
	{Cuisine: "茶饮", Names: []string{"茶艺馆", "茶饮"}},
	{Cuisine: "甜品", Names: []string{"甜品店", "甜品"}},
	{Cuisine: "快餐", Names: []string{"快餐厅", "快餐"}},
	{Cuisine: "茶餐厅", Names: []string{"茶餐厅"}},
}
