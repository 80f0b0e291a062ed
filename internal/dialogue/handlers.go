package dialogue

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/4lin107/xiaozhi-assistant/internal/nlu"
	logx "github.com/4lin107/xiaozhi-assistant/pkg/logger"
)

func handleGreeting(ctx context.Context, req *Request) (string, error) {
	var greetings []string
	switch hour := time.Now().Hour(); {
	case hour < 12:
		greetings = []string{"早上好！有什么可以帮助你的吗？", "早安！很高兴为您服务。"}
	case hour < 18:
		greetings = []string{"下午好！有什么可以帮助你的吗？", "午安！很高兴为您服务。"}
	default:
		greetings = []string{"晚上好！有什么可以帮助你的吗？", "晚安！很高兴为您服务。"}
	}
	return greetings[rand.Intn(len(greetings))], nil
}

func handleWeather(ctx context.Context, req *Request) (string, error) {
	city, ok := nlu.FirstOfType(req.Entities, nlu.EntityCity)
	if !ok {
		city = "北京"
	}
	timeHint, _ := nlu.FirstOfType(req.Entities, nlu.EntityTimeWord)

	info, err := req.Actions.GetWeather(ctx, city, timeHint)
	if err != nil {
		logx.Error().Err(err).Str("city", city).Msg("weather lookup failed")
		return fmt.Sprintf("抱歉，获取%s的天气信息失败，请稍后重试", city), nil
	}
	return info, nil
}

func handleNews(ctx context.Context, req *Request) (string, error) {
	info, err := req.Actions.GetNews(ctx)
	if err != nil {
		logx.Error().Err(err).Msg("news lookup failed")
		return "抱歉，获取新闻信息失败，请稍后重试", nil
	}
	return info, nil
}

func handleCalculator(ctx context.Context, req *Request) (string, error) {
	expr, ok := nlu.ParseMathExpression(req.Input)
	if !ok {
		return "抱歉，我没有找到需要计算的数学表达式", nil
	}

	result, err := nlu.EvalMathExpression(expr)
	if err != nil {
		if err == nlu.ErrDivideByZero {
			return "抱歉，除数不能为零", nil
		}
		logx.Error().Err(err).Str("expr", expr).Msg("expression evaluation failed")
		return "抱歉，计算失败，请检查您的输入", nil
	}
	return fmt.Sprintf("计算结果是: %s", strconv.FormatFloat(result, 'f', -1, 64)), nil
}

func handleTime(ctx context.Context, req *Request) (string, error) {
	return fmt.Sprintf("现在的时间是 %s", time.Now().Format("15:04:05")), nil
}

var weekdayNames = []string{"星期日", "星期一", "星期二", "星期三", "星期四", "星期五", "星期六"}

func handleDate(ctx context.Context, req *Request) (string, error) {
	now := time.Now()
	return fmt.Sprintf("今天是 %s，%s", now.Format("2006年01月02日"), weekdayNames[now.Weekday()]), nil
}

var musicNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`播放\s*(.+?)(?:的歌|的音乐)?(?:吧|呗|啊)?$`),
	regexp.MustCompile(`听\s*(.+?)(?:的歌|的音乐)?(?:吧|呗|啊)?$`),
	regexp.MustCompile(`放\s*(.+?)(?:的歌|的音乐)?(?:吧|呗|啊)?$`),
	regexp.MustCompile(`来首\s*(.+?)(?:的歌|的音乐)?(?:吧|呗|啊)?$`),
	regexp.MustCompile(`我想听\s*(.+?)(?:的歌|的音乐)?(?:吧|呗|啊)?$`),
	regexp.MustCompile(`想听\s*(.+?)(?:的歌|的音乐)?$`),
	regexp.MustCompile(`播放的音乐是\s*(.+)$`),
	regexp.MustCompile(`想播放的音乐是\s*(.+)$`),
}

var (
	musicFillerRe  = regexp.MustCompile(`[吧呗啊哦了]+$`)
	musicLeadVerbs = regexp.MustCompile(`^(播放|听|放|来首|我想听|想听)\s*`)
	genericSongs   = map[string]struct{}{"音乐": {}, "歌": {}, "歌曲": {}, "什么": {}}
)

func extractMusicName(req *Request) string {
	if song, ok := nlu.FirstOfType(req.Entities, nlu.EntitySong); ok {
		return song
	}

	for _, re := range musicNamePatterns {
		m := re.FindStringSubmatch(req.Input)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(musicFillerRe.ReplaceAllString(strings.TrimSpace(m[1]), ""))
		if name == "" {
			continue
		}
		if _, generic := genericSongs[name]; !generic {
			return name
		}
	}

	// Follow-up in a music conversation: the whole input may be the title.
	if req.Session.LastIntent == nlu.IntentMusic {
		name := musicLeadVerbs.ReplaceAllString(req.Input, "")
		name = strings.TrimSpace(musicFillerRe.ReplaceAllString(name, ""))
		if name != "" {
			if _, generic := genericSongs[name]; !generic {
				return name
			}
		}
	}
	return ""
}

func handleMusic(ctx context.Context, req *Request) (string, error) {
	if !req.Guard.HasPermission("play") {
		return "抱歉，您当前的权限不足，无法播放音乐", nil
	}

	name := extractMusicName(req)
	if name == "" {
		return "请告诉我您想要播放的音乐名称，例如：播放周杰伦的歌、听稻香", nil
	}

	result, err := req.Actions.PlayMusic(ctx, name)
	if err != nil {
		logx.Error().Err(err).Str("song", name).Msg("music playback failed")
		return fmt.Sprintf("抱歉，播放音乐时出错: %v", err), nil
	}
	return result, nil
}

func handleTranslation(ctx context.Context, req *Request) (string, error) {
	return "抱歉，翻译功能正在开发中", nil
}

func handleName(ctx context.Context, req *Request) (string, error) {
	if name := req.Session.Memory.UserName; name != "" {
		return fmt.Sprintf("我是您的语音助手，%s，很高兴为您服务！", name), nil
	}
	return "我是您的语音助手，很高兴为您服务！", nil
}

var jokes = []string{
	"为什么程序员总是分不清万圣节和圣诞节？因为 Oct 31 == Dec 25！",
	"有一天，代码对程序员说：我有个 bug。程序员说：别担心，我来修复你。代码说：不，我是想说，我有个 bug，我很喜欢它。",
	"为什么计算机喜欢冬天？因为它们有 Windows！",
}

func handleJoke(ctx context.Context, req *Request) (string, error) {
	return jokes[rand.Intn(len(jokes))], nil
}

func handleExit(ctx context.Context, req *Request) (string, error) {
	return "感谢使用，再见！", nil
}

// folderNameAliases canonicalise colloquial folder names before the
// capability resolves them.
var folderNameAliases = map[string]string{
	"桌面": "桌面", "文档": "文档", "下载": "下载",
	"图片": "图片", "音乐": "音乐", "视频": "视频",
	"我的文档": "文档", "我的桌面": "桌面", "我的下载": "下载",
	"我的图片": "图片", "我的音乐": "音乐", "我的视频": "视频",
	"文档文件夹": "文档", "下载文件夹": "下载", "图片文件夹": "图片",
}

var openFolderPatterns = []*regexp.Regexp{
	regexp.MustCompile(`打开\s*(.+?)(?:文件夹)?(?:吧|呗|啊)?$`),
	regexp.MustCompile(`查看\s*(.+?)(?:文件夹)?(?:吧|呗|啊)?$`),
	regexp.MustCompile(`浏览\s*(.+?)(?:文件夹)?(?:吧|呗|啊)?$`),
}

func extractFolderPath(req *Request) string {
	if path, ok := nlu.FirstOfType(req.Entities, nlu.EntityFilePath); ok {
		return path
	}

	for keyword, path := range folderNameAliases {
		if strings.Contains(req.Input, keyword) {
			return path
		}
	}

	for _, re := range openFolderPatterns {
		if m := re.FindStringSubmatch(req.Input); m != nil {
			candidate := strings.TrimSpace(m[1])
			for _, kw := range folderKeywordSet {
				if strings.Contains(candidate, kw) {
					return candidate
				}
			}
		}
	}
	return ""
}

var folderKeywordSet = []string{"文件夹", "目录", "桌面", "文档", "下载", "图片", "音乐", "视频"}

func handleOpenFolder(ctx context.Context, req *Request) (string, error) {
	if !req.Guard.HasPermission("open") {
		return "抱歉，您当前的权限不足，无法打开文件夹", nil
	}

	path := extractFolderPath(req)
	if path == "" {
		return "请告诉我您想要打开的文件夹，例如：打开桌面、打开文档文件夹", nil
	}

	result, err := req.Actions.OpenFolder(ctx, path)
	if err != nil {
		logx.Error().Err(err).Str("path", path).Msg("open folder failed")
		return fmt.Sprintf("抱歉，打开文件夹时出错: %v", err), nil
	}
	return result, nil
}

var openAppPatterns = []*regexp.Regexp{
	regexp.MustCompile(`打开\s*(.+?)(?:吧|呗|啊|哦|了)?$`),
	regexp.MustCompile(`启动\s*(.+?)(?:吧|呗|啊|哦|了)?$`),
	regexp.MustCompile(`运行\s*(.+?)(?:吧|呗|啊|哦|了)?$`),
	regexp.MustCompile(`开启\s*(.+?)(?:吧|呗|啊|哦|了)?$`),
	regexp.MustCompile(`帮我打开\s*(.+?)(?:吧|呗|啊|哦|了)?$`),
	regexp.MustCompile(`请打开\s*(.+?)(?:吧|呗|啊|哦|了)?$`),
}

var appFillerRe = regexp.MustCompile(`[吧呗啊哦了]+$`)

var commonApps = []string{
	"微信", "qq", "浏览器", "chrome", "edge", "firefox", "word", "excel",
	"powerpoint", "记事本", "计算器", "画图", "酷狗", "酷狗音乐", "网易云音乐",
	"qq音乐", "b站", "哔哩哔哩", "抖音", "微博", "淘宝", "京东", "支付宝",
	"钉钉", "飞书", "企业微信", "腾讯会议", "zoom", "vscode", "pycharm",
	"设置", "控制面板", "任务管理器", "命令提示符", "powershell",
}

// sensitiveApps have system-level access and need an explicit confirmation
// before launching when the policy requires it.
var sensitiveApps = map[string]struct{}{
	"cmd": {}, "命令提示符": {}, "powershell": {}, "终端": {},
	"bash": {}, "注册表": {}, "regedit": {},
}

func extractAppName(req *Request) string {
	if app, ok := nlu.FirstOfType(req.Entities, nlu.EntityAppName); ok {
		return app
	}

	for _, re := range openAppPatterns {
		if m := re.FindStringSubmatch(req.Input); m != nil {
			name := strings.TrimSpace(appFillerRe.ReplaceAllString(strings.TrimSpace(m[1]), ""))
			if name != "" {
				return name
			}
		}
	}

	lower := strings.ToLower(req.Input)
	for _, app := range commonApps {
		if strings.Contains(lower, app) {
			return app
		}
	}
	return ""
}

func handleOpenApplication(ctx context.Context, req *Request) (string, error) {
	if !req.Guard.HasPermission("open") {
		return "抱歉，您当前的权限不足，无法打开应用程序", nil
	}

	app := extractAppName(req)
	if app == "" {
		return "请告诉我您想要打开的应用程序名称，例如：打开微信、打开记事本", nil
	}

	if _, sensitive := sensitiveApps[strings.ToLower(app)]; sensitive && req.Guard.RequireConfirmation() {
		msg := fmt.Sprintf("确定要打开 %s 吗？这是一个具有系统访问权限的应用程序。", app)
		req.Session.PushPendingQuestion(PendingQuestion{
			Kind:    "confirmation",
			Action:  nlu.IntentOpenApplication,
			Params:  map[string]string{"app_name": app},
			Message: msg,
		})
		return msg, nil
	}

	result, err := req.Actions.OpenApplication(ctx, app)
	if err != nil {
		logx.Error().Err(err).Str("app", app).Msg("open application failed")
		return fmt.Sprintf("抱歉，打开应用程序时出错: %v", err), nil
	}
	return result, nil
}

func handleMap(ctx context.Context, req *Request) (string, error) {
	location, ok := nlu.FirstOfType(req.Entities, nlu.EntityCity)
	if !ok {
		return "请告诉我您想要搜索的位置", nil
	}

	result, err := req.Actions.SearchMap(ctx, location)
	if err != nil {
		logx.Error().Err(err).Str("location", location).Msg("map search failed")
		return fmt.Sprintf("抱歉，地图搜索时出错: %v", err), nil
	}
	return result, nil
}

var searchQueryRe = regexp.MustCompile(`搜索(.+)`)

func handleSearchInternet(ctx context.Context, req *Request) (string, error) {
	if !req.Guard.HasPermission("search") {
		return "抱歉，您当前的权限不足，无法搜索", nil
	}

	query, ok := nlu.FirstOfType(req.Entities, nlu.EntityQuery)
	if !ok {
		if m := searchQueryRe.FindStringSubmatch(req.Input); m != nil {
			query = strings.TrimSpace(m[1])
		}
	}
	if query == "" {
		return "请告诉我您想要搜索的内容", nil
	}

	result, err := req.Actions.SearchInternet(ctx, query)
	if err != nil {
		logx.Error().Err(err).Str("query", query).Msg("internet search failed")
		return fmt.Sprintf("抱歉，互联网搜索时出错: %v", err), nil
	}
	return result, nil
}

func handleListFiles(ctx context.Context, req *Request) (string, error) {
	if !req.Guard.HasPermission("open") {
		return "抱歉，您当前的权限不足，无法查看目录", nil
	}

	dir, ok := nlu.FirstOfType(req.Entities, nlu.EntityFilePath)
	if !ok {
		return "请告诉我您想要查看的目录路径", nil
	}

	result, err := req.Actions.ListFiles(ctx, dir)
	if err != nil {
		logx.Error().Err(err).Str("dir", dir).Msg("list files failed")
		return fmt.Sprintf("抱歉，列出文件时出错: %v", err), nil
	}
	return result, nil
}

func handleUnknown(ctx context.Context, req *Request) (string, error) {
	return defaultResponse(), nil
}
