package taxonomy

import "Lunch-App/internal/domain/model"

// leaf はキーワード付きの末端カテゴリを作成する
func leaf(code, name string, keywords ...string) *model.POICategory {
	return &model.POICategory{Code: code, Name: name, Keywords: keywords}
}

// group は子カテゴリを持つカテゴリを作成する
func group(code, name string, children ...*model.POICategory) *model.POICategory {
	return &model.POICategory{Code: code, Name: name, Subcategories: children}
}

// RestaurantCategories 高徳地図の飲食サービス (050000) 分類ツリー
var RestaurantCategories = group(DefaultCode, DefaultCategoryName,
	group("050100", "中餐厅",
		leaf("050101", "综合酒楼"),
		leaf("050102", "四川菜(川菜)", "川菜", "麻辣", "四川"),
		leaf("050103", "广东菜(粤菜)", "粤菜", "广东", "广州"),
		leaf("050104", "山东菜(鲁菜)", "鲁菜", "山东"),
		leaf("050105", "江苏菜", "苏菜", "江苏"),
		leaf("050106", "浙江菜", "浙菜", "浙江"),
		leaf("050107", "上海菜", "沪菜", "上海"),
		leaf("050108", "湖南菜(湘菜)", "湘菜", "湖南"),
		leaf("050109", "安徽菜(徽菜)", "徽菜", "安徽"),
		leaf("050110", "福建菜", "闽菜", "福建"),
		leaf("050111", "北京菜", "京菜", "北京"),
		leaf("050112", "湖北菜(鄂菜)", "鄂菜", "湖北"),
		leaf("050113", "东北菜", "东北菜", "东北"),
		leaf("050114", "云贵菜", "云南菜", "贵州菜", "云贵"),
		leaf("050115", "西北菜", "西北菜", "陕西", "甘肃"),
		leaf("050116", "老字号", "老字号", "传统"),
		leaf("050117", "火锅店", "火锅", "涮锅"),
		leaf("050118", "特色/地方风味餐厅", "特色", "地方风味"),
		leaf("050119", "海鲜酒楼", "海鲜", "海鲜酒楼"),
		leaf("050120", "中式素菜馆", "素食", "素菜"),
		leaf("050121", "清真菜馆", "清真", "回民"),
		leaf("050122", "台湾菜", "台湾菜", "台湾"),
		leaf("050123", "潮州菜", "潮菜", "潮汕"),
	),
	group("050200", "外国餐厅",
		leaf("050201", "西餐厅(综合风味)", "西餐", "西式"),
		leaf("050202", "日本料理", "日本", "料理", "日料", "寿司"),
		leaf("050203", "韩国料理", "韩国", "料理", "韩式", "烤肉"),
		leaf("050204", "法式菜品餐厅", "法国菜", "法式"),
		leaf("050205", "意式菜品餐厅", "意大利菜", "意式"),
		leaf("050206", "泰国/越南菜品餐厅", "泰国菜", "越南菜", "泰式", "越式"),
		leaf("050207", "地中海风格菜品", "地中海菜", "地中海"),
		leaf("050208", "美式风味", "美国菜", "美式"),
		leaf("050209", "印度风味", "印度菜", "印度"),
		leaf("050210", "英国式菜品餐厅", "英国菜", "英式"),
		leaf("050211", "牛扒店(扒房)", "牛扒", "牛排", "扒房"),
		leaf("050212", "俄国菜", "俄罗斯菜", "俄式"),
		leaf("050213", "葡国菜", "葡萄牙菜", "葡式"),
		leaf("050214", "德国菜", "德国菜", "德式"),
		leaf("050215", "巴西菜", "巴西菜", "巴西"),
		leaf("050216", "墨西哥菜", "墨西哥菜", "墨西哥"),
		leaf("050217", "其它亚洲菜", "亚洲菜"),
	),
	group("050300", "快餐厅",
		leaf("050301", "肯德基", "肯德基", "KFC"),
		leaf("050302", "麦当劳", "麦当劳", "M记"),
		leaf("050303", "必胜客", "必胜客", "Pizza Hut"),
		leaf("050304", "永和豆浆", "永和豆浆"),
		leaf("050305", "茶餐厅", "茶餐厅", "港式茶餐厅"),
		leaf("050306", "大家乐", "大家乐"),
		leaf("050307", "大快活", "大快活"),
		leaf("050308", "美心", "美心"),
		leaf("050309", "吉野家", "吉野家", "日式快餐"),
		leaf("050310", "仙跡岩", "仙跡岩"),
		leaf("050311", "呷哺呷哺", "呷哺呷哺", "小火锅"),
	),
	group("050400", "休闲餐饮场所"),
	group("050500", "咖啡厅",
		leaf("050501", "星巴克咖啡", "星巴克", "Starbucks"),
		leaf("050502", "上岛咖啡", "上岛咖啡"),
		leaf("050503", "Pacific Coffee Company", "Pacific Coffee", "PCC"),
		leaf("050504", "巴黎咖啡店", "巴黎咖啡店"),
	),
	group("050600", "茶艺馆"),
	group("050700", "冷饮店"),
	group("050800", "糕饼店"),
	group("050900", "甜品店"),
)
