package nlu

// Intent names the user's requested action for one turn. The set is closed;
// IntentNone marks the absence of a classification and is distinct from
// IntentUnknown, which is the terminal fallback after context resolution.
type Intent string

const (
	IntentNone Intent = ""

	IntentOpenApplication Intent = "open_application"
	IntentOpenFolder      Intent = "open_folder"
	IntentWeather         Intent = "weather"
	IntentTime            Intent = "time"
	IntentDate            Intent = "date"
	IntentAlarm           Intent = "alarm"
	IntentCalculator      Intent = "calculator"
	IntentTranslation     Intent = "translation"
	IntentNews            Intent = "news"
	IntentStock           Intent = "stock"
	IntentSports          Intent = "sports"
	IntentMovie           Intent = "movie"
	IntentMusic           Intent = "music"
	IntentVideo           Intent = "video"
	IntentSearchInternet  Intent = "search_internet"
	IntentMap             Intent = "map"
	IntentVolume          Intent = "volume"
	IntentBrightness      Intent = "brightness"
	IntentWifi            Intent = "wifi"
	IntentBluetooth       Intent = "bluetooth"
	IntentScreenshot      Intent = "screenshot"
	IntentSystemInfo      Intent = "system_info"
	IntentListFiles       Intent = "list_files"
	IntentCreateFile      Intent = "create_file"
	IntentDeleteFile      Intent = "delete_file"
	IntentJoke            Intent = "joke"
	IntentStory           Intent = "story"
	IntentRiddle          Intent = "riddle"
	IntentPoetry          Intent = "poetry"
	IntentGreeting        Intent = "greeting"
	IntentFarewell        Intent = "farewell"
	IntentThanks          Intent = "thanks"
	IntentPraise          Intent = "praise"
	IntentName            Intent = "name"
	IntentAge             Intent = "age"
	IntentAbility         Intent = "ability"
	IntentMood            Intent = "mood"
	IntentCreator         Intent = "creator"
	IntentSmartHome       Intent = "smart_home"
	IntentWeatherDress    Intent = "weather_dress"
	IntentFood            Intent = "food"
	IntentHealth          Intent = "health"
	IntentHoroscope       Intent = "horoscope"
	IntentExit            Intent = "exit"
	IntentUnknown         Intent = "unknown"
)

type intentRule struct {
	Intent   Intent
	Patterns []pattern
}

// defaultIntentRules declares the ordered rule cascade. Declaration order is
// part of the contract: several intents share vocabulary, and the first intent
// whose first matching pattern fires wins. Do not reorder.
func defaultIntentRules() []intentRule {
	return []intentRule{
		// explicit operation commands
		{IntentOpenApplication, patterns(
			`打开\s*.+`, `启动\s*.+`, `运行\s*.+软件`, `开启\s*.+`,
			"帮我打开", "请打开", "能打开",
		)},
		{IntentOpenFolder, patterns(
			"打开.*文件夹", "打开桌面", "打开文档", "打开下载",
			"打开图片", "打开音乐", "打开视频", "查看.*目录",
		)},

		// concrete feature queries
		{IntentWeather, patterns(
			"天气", "气温", "温度", "下雨", "下雪", "晴天", "阴天",
			"多云", "雾霾", "空气质量", "紫外线", "穿什么", "带伞",
		)},
		{IntentTime, patterns(
			"几点了", "几点钟", "现在时间", "现在几点", "报时",
			"什么时候", "多长时间",
		)},
		{IntentDate, patterns(
			"几号", "星期几", "什么日期", "今天日期", "农历",
			"阳历", "节日", "放假",
		)},
		{IntentAlarm, patterns(
			"闹钟", "提醒我", "定时", "倒计时", "计时器",
			".*点.*叫我", ".*分钟后.*提醒",
		)},
		{IntentCalculator, patterns(
			"计算", "算一下", `\d+\s*[+\-*/×÷]\s*\d+`, "等于多少",
			"多少钱", "汇率", "换算", "平方", "开方", "百分之",
		)},
		{IntentTranslation, patterns(
			"翻译", "怎么说", "什么意思", "英语", "日语", "韩语",
			"法语", "德语", "俄语", "西班牙语",
		)},

		// information queries
		{IntentNews, patterns("新闻", "资讯", "时事", "头条", "热点", "热搜")},
		{IntentStock, patterns("股票", "股价", "大盘", "涨跌", "基金", "理财")},
		{IntentSports, patterns("比分", "比赛", "球赛", "足球", "篮球", "赛程")},
		{IntentMovie, patterns("电影", "影片", "上映", "票房", "评分")},
		{IntentMusic, patterns(
			"播放.*歌", "听.*歌", "放首歌", "来首歌", "播放音乐",
			"唱.*歌", "来一首",
		)},
		{IntentVideo, patterns("播放.*视频", "看.*视频", "放.*视频")},

		// search and navigation
		{IntentSearchInternet, patterns(
			"搜索", "搜一下", "查一下", "百度", "谷歌",
			"帮我查", "了解一下", "是什么",
		)},
		{IntentMap, patterns(
			"地图", "导航", "怎么走", "在哪里", "路线", "距离",
			"多远", "附近", "周边",
		)},

		// system control
		{IntentVolume, patterns(
			"音量", "声音", "大声", "小声", "静音",
			"调高音量", "调低音量", "开声音", "关声音",
		)},
		{IntentBrightness, patterns("亮度", "屏幕亮", "调亮", "调暗")},
		{IntentWifi, patterns("wifi", "无线网", "网络连接", "断网")},
		{IntentBluetooth, patterns("蓝牙", "连接设备", "配对")},
		{IntentScreenshot, patterns("截图", "截屏", "屏幕截图")},
		{IntentSystemInfo, patterns(
			"系统信息", "电脑信息", "内存", "cpu", "硬盘",
			"电量", "存储空间",
		)},

		// file operations
		{IntentListFiles, patterns("列出文件", "文件列表", "显示文件", "有什么文件")},
		{IntentCreateFile, patterns("创建文件", "新建文件", "写入文件")},
		{IntentDeleteFile, patterns("删除文件", "移除文件")},

		// small talk
		{IntentJoke, patterns("笑话", "讲个笑话", "说个笑话", "逗我笑", "开心一下")},
		{IntentStory, patterns("讲故事", "说故事", "听故事")},
		{IntentRiddle, patterns("猜谜", "谜语", "脑筋急转弯")},
		{IntentPoetry, patterns("诗", "古诗", "诗词", "念首诗")},
		{IntentGreeting, patterns(
			"你好", "您好", "嗨", "哈喽", "早上好", "晚上好",
			"下午好", "早安", "晚安", "中午好",
		)},
		{IntentFarewell, patterns("再见", "拜拜", "回见", "下次见", "晚安")},
		{IntentThanks, patterns("谢谢", "感谢", "多谢", "辛苦了")},
		{IntentPraise, patterns("厉害", "真棒", "不错", "很好", "太强了")},
		{IntentName, patterns("你叫什么", "你是谁", "你的名字", "介绍.*自己")},
		{IntentAge, patterns("你多大", "你几岁", "你的年龄")},
		{IntentAbility, patterns("你能做什么", "你会什么", "有什么功能", "帮助")},
		{IntentMood, patterns("你开心吗", "你心情", "你怎么样")},
		{IntentCreator, patterns("谁创造", "谁开发", "谁做的", "作者是谁")},

		// smart home (reserved)
		{IntentSmartHome, patterns(
			"开灯", "关灯", "空调", "电视", "窗帘",
			"扫地机器人", "智能家居",
		)},

		// daily life
		{IntentWeatherDress, patterns("穿什么", "怎么穿", "穿衣建议")},
		{IntentFood, patterns("吃什么", "美食", "餐厅", "外卖", "菜谱", "做法")},
		{IntentHealth, patterns("健康", "养生", "运动", "减肥", "睡眠")},
		{IntentHoroscope, patterns("星座", "运势", "今日运势")},

		// exit
		{IntentExit, patterns("退出", "关闭助手", "结束对话", "停止")},
	}
}
