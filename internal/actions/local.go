package actions

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	logx "github.com/4lin107/xiaozhi-assistant/pkg/logger"
)

// folderAliases maps colloquial folder names to home subdirectories.
var folderAliases = map[string]string{
	"桌面":   "Desktop",
	"我的桌面": "Desktop",
	"文档":   "Documents",
	"我的文档": "Documents",
	"下载":   "Downloads",
	"我的下载": "Downloads",
	"音乐":   "Music",
	"我的音乐": "Music",
	"图片":   "Pictures",
	"我的图片": "Pictures",
	"视频":   "Videos",
	"我的视频": "Videos",
}

// appCommands maps known application names to launch commands.
var appCommands = map[string]string{
	"记事本":   "gedit",
	"计算器":   "gnome-calculator",
	"终端":    "x-terminal-emulator",
	"浏览器":   "xdg-open https://www.baidu.com",
	"chrome": "google-chrome",
	"edge":   "microsoft-edge",
	"vscode": "code",
}

// Local implements Capability for on-machine operations. Network-backed
// operations are not wired in this build and fail with descriptive errors the
// dispatch layer turns into apologies.
type Local struct {
	goos string
}

func NewLocal() *Local {
	return &Local{goos: runtime.GOOS}
}

func (l *Local) resolveFolder(path string) string {
	if mapped, ok := folderAliases[strings.ToLower(path)]; ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, mapped)
	}
	return path
}

func (l *Local) openCommand(target string) *exec.Cmd {
	switch l.goos {
	case "windows":
		return exec.Command("cmd", "/c", "start", "", target)
	case "darwin":
		return exec.Command("open", target)
	default:
		return exec.Command("xdg-open", target)
	}
}

func (l *Local) OpenFolder(ctx context.Context, path string) (string, error) {
	resolved := l.resolveFolder(path)

	info, err := os.Stat(resolved)
	if err != nil {
		return "", fmt.Errorf("文件夹路径不存在: %s", resolved)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s 不是一个文件夹", resolved)
	}

	cmd := l.openCommand(resolved)
	if err := cmd.Start(); err != nil {
		logx.Error().Err(err).Str("path", resolved).Msg("failed to open folder")
		return "", fmt.Errorf("打开文件夹失败: %s", resolved)
	}
	return fmt.Sprintf("已成功打开文件夹: %s", resolved), nil
}

func (l *Local) OpenApplication(ctx context.Context, name string) (string, error) {
	command, ok := appCommands[strings.ToLower(name)]
	if !ok {
		command = name
	}

	parts := strings.Fields(command)
	cmd := exec.Command(parts[0], parts[1:]...)
	if err := cmd.Start(); err != nil {
		logx.Error().Err(err).Str("app", name).Msg("failed to launch application")
		return "", fmt.Errorf("未能启动应用 %s", name)
	}
	return fmt.Sprintf("已为您打开 %s", name), nil
}

func (l *Local) ListFiles(ctx context.Context, dir string) (string, error) {
	resolved := l.resolveFolder(dir)

	entries, err := os.ReadDir(resolved)
	if err != nil {
		return "", fmt.Errorf("无法读取目录 %s", resolved)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	if len(names) == 0 {
		return fmt.Sprintf("目录 %s 是空的", resolved), nil
	}
	return fmt.Sprintf("目录 %s 下有: %s", resolved, strings.Join(names, "、")), nil
}

func (l *Local) GetWeather(ctx context.Context, city, timeHint string) (string, error) {
	return "", fmt.Errorf("天气服务未接入，无法查询%s的天气", city)
}

func (l *Local) GetNews(ctx context.Context) (string, error) {
	return "", fmt.Errorf("新闻服务未接入")
}

func (l *Local) SearchInternet(ctx context.Context, query string) (string, error) {
	return "", fmt.Errorf("搜索服务未接入，无法搜索 %s", query)
}

func (l *Local) SearchMap(ctx context.Context, location string) (string, error) {
	return "", fmt.Errorf("地图服务未接入，无法定位 %s", location)
}

func (l *Local) PlayMusic(ctx context.Context, name string) (string, error) {
	return "", fmt.Errorf("音乐服务未接入，无法播放 %s", name)
}

func (l *Local) Translate(ctx context.Context, text, targetLang string) (string, error) {
	return "", fmt.Errorf("翻译服务未接入")
}

var _ Capability = (*Local)(nil)
