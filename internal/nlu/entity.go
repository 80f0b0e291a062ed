package nlu

import (
	"regexp"
	"strings"
)

// EntityType is the closed set of recognised entity categories.
type EntityType string

const (
	EntityCity      EntityType = "city"
	EntityTimeWord  EntityType = "time_word"
	EntityTimePoint EntityType = "time_point"
	EntityNumber    EntityType = "number"
	EntityDuration  EntityType = "duration"
	EntityAppName   EntityType = "app_name"
	EntityFilePath  EntityType = "file_path"
	EntityLanguage  EntityType = "language"
	EntityPerson    EntityType = "person"
	EntitySong      EntityType = "song"
	EntityQuery     EntityType = "query"
)

// Entity is a typed span of recognised information extracted from one turn.
type Entity struct {
	Type  EntityType `json:"type"`
	Value string     `json:"value"`
}

type entityPatterns struct {
	Type     EntityType
	Patterns []pattern
}

// defaultEntityPatterns declares the extraction tables. Emission order follows
// declaration order; consumers pick the first qualifying entity of a type, not
// a position within the turn.
func defaultEntityPatterns() []entityPatterns {
	return []entityPatterns{
		{EntityCity, patterns(
			// municipalities
			"北京", "上海", "天津", "重庆",
			// provincial capitals
			"广州", "深圳", "杭州", "成都", "西安", "武汉", "南京",
			"郑州", "长沙", "沈阳", "济南", "南宁", "福州", "长春",
			"哈尔滨", "合肥", "南昌", "昆明", "贵阳", "太原", "石家庄",
			"兰州", "乌鲁木齐", "呼和浩特", "西宁", "银川", "拉萨", "海口",
			// major cities
			"苏州", "青岛", "大连", "宁波", "厦门", "三亚", "东莞",
			"佛山", "无锡", "温州", "珠海", "中山", "惠州", "烟台",
			"常州", "徐州", "潍坊", "绍兴", "嘉兴", "泉州", "漳州",
			"南通", "扬州", "镇江", "盐城", "连云港", "淮安", "泰州",
			"桂林", "柳州", "北海", "梧州", "玉林", "贵港", "百色",
			// special administrative regions
			"香港", "澳门", "台北", "高雄", "台中",
		)},
		{EntityTimeWord, patterns(
			"今天", "明天", "后天", "大后天", "昨天", "前天",
			"上周", "下周", "本周", "这周", "本月", "下月", "上个月",
			"今年", "明年", "去年", "早上", "上午", "中午", "下午",
			"晚上", "凌晨", "傍晚", "深夜", "半夜",
			"周一", "周二", "周三", "周四", "周五", "周六", "周日",
			"星期一", "星期二", "星期三", "星期四", "星期五", "星期六", "星期日",
		)},
		{EntityNumber, patterns(`\d+\.?\d*`)},
		{EntityDuration, patterns(
			`\d+秒`, `\d+分钟`, `\d+小时`, `\d+天`, `\d+周`,
			`\d+个月`, `\d+年`, "半小时", "一刻钟",
		)},
		{EntityAppName, foldPatterns(
			// system tools
			"记事本", "计算器", "画图", "写字板", "任务管理器",
			"控制面板", "资源管理器", "截图工具", "命令提示符",
			"cmd", "powershell", "终端", "设置",
			// browsers
			"浏览器", "Chrome", "谷歌浏览器", "Edge", "微软浏览器",
			"Firefox", "火狐浏览器", "Safari", "Opera",
			// office
			"Word", "Excel", "PowerPoint", "PPT", "Outlook",
			"OneNote", "WPS", "Access",
			// developer tools
			"VSCode", "Visual Studio Code", "Visual Studio",
			"PyCharm", "IDEA", "IntelliJ", "Sublime", `Notepad\+\+`,
			"Git", "GitHub Desktop", "Postman",
			// messaging
			"微信", "QQ", "钉钉", "飞书", "企业微信", "腾讯会议",
			"Zoom", "Teams", "Skype", "Discord", "Telegram",
			// music
			"酷狗", "酷狗音乐", "网易云音乐", "QQ音乐", "酷我音乐",
			"Spotify", "Apple Music",
			// video
			"B站", "哔哩哔哩", "腾讯视频", "爱奇艺", "优酷",
			"芒果TV", "抖音", "快手", "西瓜视频", "YouTube",
			// shopping
			"淘宝", "京东", "拼多多", "支付宝", "美团", "饿了么",
			"天猫", "唯品会", "苏宁易购",
			// maps
			"高德地图", "百度地图", "腾讯地图", "Google地图",
			// social media
			"微博", "小红书", "知乎", "豆瓣", "贴吧",
			// game platforms
			"Steam", "Epic", "WeGame", "Origin", "Uplay",
			// misc
			"滴滴出行", "相机", "相册", "日历", "闹钟",
			"蓝牙", "WiFi", "备忘录", "便签",
		)},
		{EntityFilePath, patterns(
			`[a-zA-Z]:\\[\w\.\s\-\\]+`,
			"桌面", "文档", "下载", "图片", "音乐", "视频",
			"我的文档", "我的桌面", "我的下载",
		)},
		{EntityLanguage, patterns(
			"英语", "日语", "韩语", "法语", "德语", "俄语",
			"西班牙语", "葡萄牙语", "意大利语", "阿拉伯语",
			"中文", "英文", "日文", "韩文",
		)},
		{EntityPerson, patterns(
			"周杰伦", "林俊杰", "陈奕迅", "邓紫棋", "薛之谦",
			"李荣浩", "毛不易", "华晨宇", "张学友", "刘德华",
		)},
		{EntitySong, patterns(
			"稻香", "晴天", "七里香", "青花瓷", "告白气球",
			"夜曲", "简单爱", "双截棍", "东风破", "菊花台",
		)},
	}
}

// clockTimePatterns drive the secondary pass for explicit clock times. The
// captured digit groups are concatenated into the entity value.
var clockTimePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{1,2})[点时](\d{1,2})?分?`),
	regexp.MustCompile(`(\d{1,2}):(\d{2})`),
	regexp.MustCompile(`(早上|上午|中午|下午|晚上|凌晨)(\d{1,2})[点时]`),
}

// Extractor scans normalized text against the entity pattern tables.
type Extractor struct {
	types []entityPatterns
}

func NewExtractor() *Extractor {
	return &Extractor{types: defaultEntityPatterns()}
}

// Extract returns every entity found in text, deduplicated by (type, value)
// and ordered by first match. Pure and deterministic; a pattern that cannot
// match is skipped, never an error.
func (e *Extractor) Extract(text string) []Entity {
	var out []Entity
	seen := make(map[Entity]struct{})

	add := func(t EntityType, v string) {
		v = strings.TrimSpace(v)
		if v == "" {
			return
		}
		ent := Entity{Type: t, Value: v}
		if _, dup := seen[ent]; dup {
			return
		}
		seen[ent] = struct{}{}
		out = append(out, ent)
	}

	for _, tbl := range e.types {
		for _, p := range tbl.Patterns {
			for _, m := range p.findAll(text) {
				add(tbl.Type, m)
			}
		}
	}

	// Secondary pass for clock-time expressions.
	for _, re := range clockTimePatterns {
		for _, groups := range re.FindAllStringSubmatch(text, -1) {
			var b strings.Builder
			for _, g := range groups[1:] {
				b.WriteString(g)
			}
			add(EntityTimePoint, b.String())
		}
	}

	return out
}

// FirstOfType returns the first entity of the given type, honouring the
// first-wins disambiguation rule handlers rely on.
func FirstOfType(entities []Entity, t EntityType) (string, bool) {
	for _, e := range entities {
		if e.Type == t {
			return e.Value, true
		}
	}
	return "", false
}
