package mapdata

import "strings"

// provinceNames maps the official names used by the boundary file to
// the short names the dataset records use.
var provinceNames = map[string]string{
	"北京市":      "北京",
	"天津市":      "天津",
	"上海市":      "上海",
	"重庆市":      "重庆",
	"河北省":      "河北",
	"山西省":      "山西",
	"辽宁省":      "辽宁",
	"吉林省":      "吉林",
	"黑龙江省":     "黑龙江",
	"江苏省":      "江苏",
	"浙江省":      "浙江",
	"安徽省":      "安徽",
	"福建省":      "福建",
	"江西省":      "江西",
	"山东省":      "山东",
	"河南省":      "河南",
	"湖北省":      "湖北",
	"湖南省":      "湖南",
	"广东省":      "广东",
	"海南省":      "海南",
	"四川省":      "四川",
	"贵州省":      "贵州",
	"云南省":      "云南",
	"陕西省":      "陕西",
	"甘肃省":      "甘肃",
	"青海省":      "青海",
	"台湾省":      "台湾",
	"内蒙古自治区":   "内蒙古",
	"广西壮族自治区":  "广西",
	"西藏自治区":    "西藏",
	"宁夏回族自治区":  "宁夏",
	"新疆维吾尔自治区": "新疆",
	"香港特别行政区":  "香港",
	"澳门特别行政区":  "澳门",
}

var provinceSuffixes = []string{"特别行政区", "自治区", "省", "市"}

func stripSuffixes(name string) string {
	for _, suffix := range provinceSuffixes {
		name = strings.ReplaceAll(name, suffix, "")
	}
	return name
}

// Normalize maps a boundary-file province name to the dataset's short
// form. Unrecognized names fall back to suffix stripping, then a
// substring match against the known names, then the input unchanged.
func Normalize(name string) string {
	if short, ok := provinceNames[name]; ok {
		return short
	}
	for official, short := range provinceNames {
		if strings.Contains(official, name) || strings.Contains(name, stripSuffixes(official)) {
			return short
		}
	}
	return name
}

// Names returns the full official-to-short mapping.
func Names() map[string]string {
	out := make(map[string]string, len(provinceNames))
	for k, v := range provinceNames {
		out[k] = v
	}
	return out
}
