package mailer

import "fmt"

// publishedEmailHTML renders the notification body for a freshly created
// page: title callout, review link, and a short footer.
func publishedEmailHTML(title, url string) string {
	return fmt.Sprintf(`<html>
<body style="font-family: Arial, sans-serif; background-color: #ffffff; color: #000000; margin: 0; padding: 0;">
  <div style="max-width: 600px; margin: 20px auto; padding: 20px;">

    <h2 style="color: #D32F2F; text-align: center;">&#127881; New Blog Created!</h2>
    <p style="text-align: center; font-size: 16px; color: #333333;">
      RILA AI Agent has successfully uploaded a new blog for you.
    </p>

    <div style="margin: 20px 0; padding: 15px; background-color: #f8f8f8; border-left: 5px solid #D32F2F;">
      <p style="margin: 0; font-size: 16px; color: #555555;">Blog Title:</p><br/>
      <h4 style="margin: 5px 0 0 0; color: #000000;">%s</h4>
    </div>

    <p style="font-size: 14px; color: #333333;">
      Please review the blog and click publish on Notion using this URL: <br/> <br/>
      <a href="%s" style="color: #D32F2F; text-decoration: none;">%s</a>
    </p>

    <p style="margin-top: 30px; font-size: 14px; color: #555555;">
      Thanks and have a nice day!<br/><br/>
      Best regards,<br/>
      <strong>Your helpful AI Agent</strong>
    </p>

    <p style="margin-top: 20px; font-size: 12px; color: #999999; text-align: center;">
      This AI agent uses an LLM to summarize blog content.
    </p>
  </div>
</body>
</html>`, title, url, url)
}
