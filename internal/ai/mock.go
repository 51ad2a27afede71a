package ai

// mockAvoidTips is returned whenever no live advisor answer is available.
const mockAvoidTips = "ブラウザのシークレットモードを使い、検索履歴による価格のつり上げを避けましょう。\n\n" +
	"同じルートを短時間に何度も検索すると価格が上がることがあります。時間をおいて再検索してください。\n\n" +
	"出発地の異なる国・地域の通貨やサイトで価格を比較すると、より安い運賃が見つかる場合があります。"

// MockAnalysis returns the fixed advisor result. label only shapes the
// option routes; the figures never change.
func MockAnalysis(label string) Analysis {
	return Analysis{
		HiddenOptions: []RawOption{
			{
				Route: label + " (経由地: ソウル)",
				Price: "¥25,000",
				Save:  "35%",
				Tips:  "ソウル経由の乗り継ぎ便は直行便より大幅に安くなることがあります。",
			},
			{
				Route: label + " (Hidden City チケット)",
				Price: "¥28,000",
				Save:  "28%",
				Tips:  "乗り継ぎ地で降機する方法です。預け荷物は利用できず、航空会社の規約違反となる場合があります。",
			},
			{
				Route: label + " (直行便)",
				Price: "¥39,000",
				Save:  "0%",
				Tips:  "比較用の標準的な直行便運賃です。",
			},
		},
		AvoidTips: mockAvoidTips,
	}
}
